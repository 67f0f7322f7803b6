package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sync"

	"github.com/Gunvolt24/storefront/internal/domain"
	"github.com/Gunvolt24/storefront/internal/ports"
)

// DefaultCartKey — фиксированный версионированный ключ снимка корзины.
const DefaultCartKey = "storefront_cart_v1"

// CartStore — корзина покупателя, зеркалируемая в KV-хранилище после каждой мутации.
// Порядок позиций — порядок добавления; не больше одной позиции на ID.
type CartStore struct {
	kv  ports.KeyValueStore
	key string
	log ports.Logger

	mu    sync.Mutex
	items []domain.CartItem

	subsMu sync.Mutex
	subs   map[int]func(domain.CartSummary)
	nextID int
}

// NewCartStore — восстанавливает корзину из хранилища.
// Любая ошибка чтения или разбора даёт пустую корзину: это не фатально.
func NewCartStore(ctx context.Context, kv ports.KeyValueStore, key string, log ports.Logger) *CartStore {
	if key == "" {
		key = DefaultCartKey
	}
	s := &CartStore{
		kv:   kv,
		key:  key,
		log:  log,
		subs: make(map[int]func(domain.CartSummary)),
	}
	s.items = s.load(ctx)
	return s
}

func (s *CartStore) load(ctx context.Context) []domain.CartItem {
	raw, ok, err := s.kv.Get(ctx, s.key)
	if err != nil {
		s.log.Warnf(ctx, "cart load failed key=%s err=%v", s.key, err)
		return []domain.CartItem{}
	}
	if !ok || raw == "" {
		return []domain.CartItem{}
	}
	var items []domain.CartItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		s.log.Warnf(ctx, "cart snapshot is corrupt key=%s err=%v", s.key, err)
		return []domain.CartItem{}
	}
	return normalize(items)
}

// normalize — чинит снимок, отредактированный руками: склеивает дубли, выбрасывает мусор.
func normalize(items []domain.CartItem) []domain.CartItem {
	out := make([]domain.CartItem, 0, len(items))
	for _, it := range items {
		if it.ID == "" || it.Quantity < 1 {
			continue
		}
		if i := indexOf(out, it.ID); i >= 0 {
			out[i].Quantity += it.Quantity
			continue
		}
		out = append(out, it)
	}
	return out
}

func indexOf(items []domain.CartItem, id string) int {
	return slices.IndexFunc(items, func(it domain.CartItem) bool { return it.ID == id })
}

// Items — копия текущих позиций.
func (s *CartStore) Items() []domain.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.items)
}

// Count — сумма количеств.
func (s *CartStore) Count() int { return s.Summary().Count }

// Subtotal — сумма unitPrice*quantity.
func (s *CartStore) Subtotal() float64 { return s.Summary().Subtotal }

// Summary — агрегаты, пересчитанные из текущих позиций.
func (s *CartStore) Summary() domain.CartSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Summarize(s.items)
}

// Add — добавить товар; существующая позиция увеличивает количество.
// Ссылка без ID игнорируется: такую позицию отбросила бы загрузка снимка.
func (s *CartStore) Add(ctx context.Context, ref domain.ProductRef, quantity float64) error {
	if ref.ID == "" {
		return nil
	}
	qty := domain.CoerceAddQuantity(quantity)
	return s.mutate(ctx, "add", func(items []domain.CartItem) []domain.CartItem {
		if i := indexOf(items, ref.ID); i >= 0 {
			items[i].Quantity = addCapped(items[i].Quantity, qty)
			return items
		}
		return append(items, domain.CartItem{
			ID:        ref.ID,
			Name:      ref.Name,
			UnitPrice: ref.UnitPrice,
			Image:     ref.Image,
			Quantity:  qty,
		})
	})
}

// SetQuantity — установить количество; значение <= 0 удаляет позицию, отсутствующий ID игнорируется.
func (s *CartStore) SetQuantity(ctx context.Context, id string, quantity float64) error {
	qty := domain.CoerceSetQuantity(quantity)
	return s.mutate(ctx, "set", func(items []domain.CartItem) []domain.CartItem {
		i := indexOf(items, id)
		switch {
		case i < 0:
			return items
		case qty <= 0:
			return slices.Delete(items, i, i+1)
		default:
			items[i].Quantity = qty
			return items
		}
	})
}

func (s *CartStore) Remove(ctx context.Context, id string) error {
	return s.mutate(ctx, "remove", func(items []domain.CartItem) []domain.CartItem {
		return slices.DeleteFunc(items, func(it domain.CartItem) bool { return it.ID == id })
	})
}

func (s *CartStore) Clear(ctx context.Context) error {
	return s.mutate(ctx, "clear", func([]domain.CartItem) []domain.CartItem {
		return []domain.CartItem{}
	})
}

// Subscribe — подписка на изменения агрегатов; возвращает функцию отписки.
func (s *CartStore) Subscribe(fn func(domain.CartSummary)) func() {
	s.subsMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subsMu.Unlock()

	return func() {
		s.subsMu.Lock()
		delete(s.subs, id)
		s.subsMu.Unlock()
	}
}

// mutate — read-modify-write под мьютексом: новое состояние применяется
// только после успешной записи снимка, так что память и хранилище не расходятся.
func (s *CartStore) mutate(ctx context.Context, op string, fn func([]domain.CartItem) []domain.CartItem) error {
	s.mu.Lock()
	next := fn(slices.Clone(s.items))
	raw, err := json.Marshal(next)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("cart %s: encode: %w", op, err)
	}
	if err := s.kv.Set(ctx, s.key, string(raw)); err != nil {
		s.mu.Unlock()
		s.log.Errorf(ctx, "cart %s: persist failed key=%s err=%v", op, s.key, err)
		return fmt.Errorf("cart %s: persist: %w", op, err)
	}
	s.items = next
	summary := domain.Summarize(next)
	s.mu.Unlock()

	s.notify(summary)
	return nil
}

func (s *CartStore) notify(summary domain.CartSummary) {
	s.subsMu.Lock()
	fns := make([]func(domain.CartSummary), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subsMu.Unlock()

	for _, fn := range fns {
		fn(summary)
	}
}

func addCapped(a, b int) int {
	const limit = 1<<31 - 1
	if a > limit-b {
		return limit
	}
	return a + b
}
