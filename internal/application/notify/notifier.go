// Package notify canal de notificaciones estructuradas (éxito/error) que publican los casos de uso.
package notify

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind tipo de notificación.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// RecentLimit cantidad de notificaciones retenidas para Recent.
const RecentLimit = 50

// Notification evento visible para el usuario.
type Notification struct {
	ID      string    `json:"id"`
	Kind    Kind      `json:"kind"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Publisher lo que necesitan los casos de uso.
type Publisher interface {
	Success(msg string)
	Error(msg string)
}

// Notifier difunde notificaciones a los suscriptores sin bloquear: si el buffer
// de un suscriptor está lleno, el evento se descarta para ese suscriptor.
type Notifier struct {
	mu     sync.Mutex
	subs   map[int]chan Notification
	nextID int
	recent []Notification
	now    func() time.Time
}

// New crea un notificador vacío.
func New() *Notifier {
	return &Notifier{subs: make(map[int]chan Notification), now: time.Now}
}

// Success publica una notificación de éxito.
func (n *Notifier) Success(msg string) { n.Publish(KindSuccess, msg) }

// Error publica una notificación de error.
func (n *Notifier) Error(msg string) { n.Publish(KindError, msg) }

// Publish crea y difunde una notificación.
func (n *Notifier) Publish(kind Kind, msg string) Notification {
	ev := Notification{ID: uuid.NewString(), Kind: kind, Message: msg, At: n.now().UTC()}

	n.mu.Lock()
	defer n.mu.Unlock()
	n.recent = append(n.recent, ev)
	if len(n.recent) > RecentLimit {
		n.recent = append([]Notification(nil), n.recent[len(n.recent)-RecentLimit:]...)
	}
	for _, ch := range n.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	return ev
}

// Subscribe registra un suscriptor con buffer dado. cancel cierra el canal.
func (n *Notifier) Subscribe(buffer int) (<-chan Notification, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Notification, buffer)

	n.mu.Lock()
	id := n.nextID
	n.nextID++
	n.subs[id] = ch
	n.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			n.mu.Lock()
			delete(n.subs, id)
			n.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Recent últimas notificaciones, de la más antigua a la más reciente.
func (n *Notifier) Recent() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]Notification, len(n.recent))
	copy(out, n.recent)
	return out
}

type discard struct{}

func (discard) Success(string) {}
func (discard) Error(string)   {}

// Discard publisher que descarta todo.
var Discard Publisher = discard{}

// Failure publica err como notificación de error; si el mensaje está vacío usa fallback.
func Failure(p Publisher, err error, fallback string) {
	msg := ""
	if err != nil {
		msg = strings.TrimSpace(err.Error())
	}
	if msg == "" {
		msg = fallback
	}
	p.Error(msg)
}
