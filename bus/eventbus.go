package bus

import (
	"github.com/asaskevich/EventBus"
	log "github.com/sirupsen/logrus"
)

const AuditTopic = "audit"

const (
	TokenIssued  = "auth.token_issued"
	AuthRejected = "auth.rejected"
)

var impl = EventBus.New()

type Event struct {
	Subject string
	Event   string
	Error   string
	Data    interface{}
}

type SubscribeFunc = func(payload Event) error

// SubscribeAsync handles events off the request path. Pending handlers are
// flushed with WaitAsync before shutdown.
func SubscribeAsync(topic string, handle SubscribeFunc) error {
	return impl.SubscribeAsync(topic, func(payload Event) {
		if err := handle(payload); err != nil {
			log.Errorf("error handling event: %s", err)
		}
	}, false)
}

func Publish(topic string, payload Event) {
	impl.Publish(topic, payload)
}

func WaitAsync() {
	impl.WaitAsync()
}
