package network

import (
	"sync"

	"github.com/abramin/norse-dungeon-crawler/pkg/api"
)

// Broadcaster занимается только рассылкой снапшотов подписчикам.
// О сессиях и симуляции он не знает ничего: ключ - токен сессии.
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: токен сессии -> личный канал
	subscribers map[string]chan api.ServerResponse
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[string]chan api.ServerResponse),
	}
}

// Register создает личный канал для сессии. Повторная регистрация того же
// токена закрывает старый канал: прежнее соединение отваливается, управление
// переходит к новому (переподключение клиента).
func (b *Broadcaster) Register(token string) chan api.ServerResponse {
	b.mu.Lock()
	defer b.mu.Unlock()

	if old, ok := b.subscribers[token]; ok {
		close(old)
	}

	ch := make(chan api.ServerResponse, 100)
	b.subscribers[token] = ch
	return ch
}

// Unregister удаляет подписчика и закрывает его канал. Канал передаётся
// для сверки: отвалившееся старое соединение не должно снести подписку
// нового, уже перехватившего тот же токен.
func (b *Broadcaster) Unregister(token string, ch chan api.ServerResponse) {
	b.mu.Lock()
	defer b.mu.Unlock()

	curr, ok := b.subscribers[token]
	if !ok || curr != ch {
		return
	}
	close(curr)
	delete(b.subscribers, token)
}

// SendTo отправляет сообщение конкретной сессии (Unicast).
// Переполненный канал молча роняет сообщение: медленный клиент
// не должен тормозить симуляцию.
func (b *Broadcaster) SendTo(token string, msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if ch, ok := b.subscribers[token]; ok {
		select {
		case ch <- msg:
		default:
		}
	}
}

// Broadcast отправляет всем подписчикам (системные уведомления).
func (b *Broadcaster) Broadcast(msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- msg:
		default:
		}
	}
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
