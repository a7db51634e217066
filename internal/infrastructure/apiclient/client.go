// Package apiclient adaptador HTTP hacia el backend REST del portal de colocaciones.
// Adjunta el token bearer guardado, serializa JSON y traduce las respuestas no-2xx a *RequestError.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/placement-portal/internal/application/ports"
	"github.com/jhoicas/placement-portal/internal/domain"
	"github.com/jhoicas/placement-portal/pkg/logger"
)

// Mensajes por defecto cuando el backend no envía {"error": ...}.
const (
	FallbackMessage       = "Request failed"
	UploadFallbackMessage = "Upload failed"
)

// RequestError fallo de una petición: mensaje del servidor textual o el mensaje por defecto.
// Status 0 indica fallo de red o de decodificación.
type RequestError struct {
	Status  int
	Message string
	Err     error
}

func (e *RequestError) Error() string { return e.Message }

// Unwrap expone el sentinel de dominio según el status y la causa original.
func (e *RequestError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := sentinelFor(e.Status); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func sentinelFor(status int) error {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.ErrInvalidInput
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusForbidden:
		return domain.ErrForbidden
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusConflict:
		return domain.ErrConflict
	default:
		return nil
	}
}

// Options configuración del cliente.
type Options struct {
	BaseURL    string // ej. http://localhost:5000/api
	BackendURL string // base para MediaURL
	HTTPClient *http.Client
	Store      ports.KeyValue
	Logger     *logger.Logger
}

// Client gateway hacia el backend. Los grupos de endpoints cuelgan de sus campos.
type Client struct {
	baseURL    string
	backendURL string
	http       *http.Client
	store      ports.KeyValue
	log        *logger.Logger

	Auth         *AuthClient
	Jobs         *JobsClient
	Applications *ApplicationsClient
	Students     *StudentsClient
	Admin        *AdminClient
	Analytics    *AnalyticsClient
}

// New construye el cliente. Sin reintentos ni timeouts propios: manda el contexto del llamador.
func New(opts Options) (*Client, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("apiclient: almacenamiento requerido")
	}
	if strings.TrimSpace(opts.BaseURL) == "" {
		return nil, fmt.Errorf("apiclient: BaseURL requerido")
	}
	c := &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		backendURL: strings.TrimRight(opts.BackendURL, "/"),
		http:       opts.HTTPClient,
		store:      opts.Store,
		log:        opts.Logger,
	}
	if c.http == nil {
		c.http = http.DefaultClient
	}
	if c.log == nil {
		c.log = logger.Nop()
	}
	c.Auth = &AuthClient{c: c}
	c.Jobs = &JobsClient{c: c}
	c.Applications = &ApplicationsClient{c: c}
	c.Students = &StudentsClient{c: c}
	c.Admin = &AdminClient{c: c}
	c.Analytics = &AnalyticsClient{c: c}
	return c, nil
}

// MediaURL resuelve una ruta de medios del backend. Ruta vacía -> "".
func (c *Client) MediaURL(path string) string {
	if path == "" {
		return ""
	}
	return c.backendURL + path
}

// doJSON envía body como JSON (si no es nil) y decodifica la respuesta en out (si no es nil).
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return &RequestError{Message: FallbackMessage, Err: err}
		}
		reader = bytes.NewReader(raw)
	}
	return c.do(ctx, method, path, reader, "application/json", FallbackMessage, out)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType, fallback string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &RequestError{Message: fallback, Err: err}
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)

	token, ok, err := c.store.Get(ctx, ports.KeyToken)
	if err != nil {
		return &RequestError{Message: fallback, Err: fmt.Errorf("leer token: %w", err)}
	}
	if ok && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Err(err).Str("method", method).Str("path", path).Str("request_id", requestID).Msg("request fallida")
		return &RequestError{Message: fallback, Err: err}
	}
	defer resp.Body.Close()

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Str("request_id", requestID).
		Dur("elapsed", time.Since(start)).
		Msg("api request")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errorFromResponse(resp, fallback)
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return &RequestError{Status: resp.StatusCode, Message: fallback, Err: err}
	}
	return nil
}

func errorFromResponse(resp *http.Response, fallback string) error {
	var payload struct {
		Error string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	msg := fallback
	if err := json.Unmarshal(raw, &payload); err == nil && strings.TrimSpace(payload.Error) != "" {
		msg = payload.Error
	}
	return &RequestError{Status: resp.StatusCode, Message: msg}
}
