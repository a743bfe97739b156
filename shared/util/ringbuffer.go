package util

import (
	"errors"
	"sync/atomic"
)

var (
	ErrRingFull  = errors.New("buffer circular cheio")
	ErrRingEmpty = errors.New("buffer circular vazio")
)

// RingBuffer é um buffer circular de capacidade fixa (potência de 2) para um
// produtor e um consumidor. Usado para guardar as últimas amostras de tempo
// do streaming sem alocar a cada frame.
type RingBuffer[T any] struct {
	entries    []T
	mask       uint64
	producerID uint64
	consumerID uint64
}

// NewRingBuffer cria um buffer com a capacidade dada arredondada para cima
// até a próxima potência de 2.
func NewRingBuffer[T any](capacity int) *RingBuffer[T] {
	size := nextPowerOfTwo(capacity)
	return &RingBuffer[T]{
		entries: make([]T, size),
		mask:    uint64(size - 1),
	}
}

// Enqueue adiciona um item. Retorna ErrRingFull se não houver espaço.
func (r *RingBuffer[T]) Enqueue(item T) error {
	next := atomic.LoadUint64(&r.producerID)
	consumer := atomic.LoadUint64(&r.consumerID)
	if next-consumer >= uint64(len(r.entries)) {
		return ErrRingFull
	}
	r.entries[next&r.mask] = item
	atomic.AddUint64(&r.producerID, 1)
	return nil
}

// Push adiciona um item descartando o mais antigo quando cheio.
func (r *RingBuffer[T]) Push(item T) {
	if r.Enqueue(item) == nil {
		return
	}
	_, _ = r.Dequeue()
	_ = r.Enqueue(item)
}

// Dequeue remove o item mais antigo. Retorna ErrRingEmpty se vazio.
func (r *RingBuffer[T]) Dequeue() (T, error) {
	var zero T
	consumer := atomic.LoadUint64(&r.consumerID)
	producer := atomic.LoadUint64(&r.producerID)
	if consumer >= producer {
		return zero, ErrRingEmpty
	}
	item := r.entries[consumer&r.mask]
	r.entries[consumer&r.mask] = zero
	atomic.AddUint64(&r.consumerID, 1)
	return item, nil
}

// Len retorna quantos itens estão no buffer.
func (r *RingBuffer[T]) Len() int {
	return int(atomic.LoadUint64(&r.producerID) - atomic.LoadUint64(&r.consumerID))
}

// Cap retorna a capacidade real.
func (r *RingBuffer[T]) Cap() int {
	return len(r.entries)
}

// Each percorre os itens do mais antigo ao mais novo sem removê-los.
func (r *RingBuffer[T]) Each(fn func(T)) {
	consumer := atomic.LoadUint64(&r.consumerID)
	producer := atomic.LoadUint64(&r.producerID)
	for i := consumer; i < producer; i++ {
		fn(r.entries[i&r.mask])
	}
}

func nextPowerOfTwo(x int) int {
	res := 2
	for res < x {
		res <<= 1
	}
	return res
}
