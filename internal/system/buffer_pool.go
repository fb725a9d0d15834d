package system

import (
	"strconv"
	"sync"
)

// FloatPool предоставляет механизмы повторного использования []float32
// для снижения нагрузки на Garbage Collector (GC). Поля смещений
// пересоздаются на каждый кадр, поэтому переиспользование буферов
// заметно снижает количество аллокаций.
type FloatPool struct {
	pools map[string]*sync.Pool
	mu    sync.RWMutex
}

var globalFloatPool = &FloatPool{
	pools: make(map[string]*sync.Pool),
}

// GetFloats возвращает []float32 длины n из пула или создает новый слайс.
// Содержимое не обнуляется: вызывающая сторона перезаписывает все элементы.
func GetFloats(n int) []float32 {
	return globalFloatPool.Get(n)
}

// PutFloats возвращает слайс в пул для повторного использования.
func PutFloats(buf []float32) {
	globalFloatPool.Put(buf)
}

func (p *FloatPool) Get(n int) []float32 {
	key := strconv.Itoa(n)
	p.mu.RLock()
	pool, exists := p.pools[key]
	p.mu.RUnlock()

	if !exists {
		p.mu.Lock()
		// Double check
		pool, exists = p.pools[key]
		if !exists {
			pool = &sync.Pool{
				New: func() interface{} {
					return make([]float32, n)
				},
			}
			p.pools[key] = pool
		}
		p.mu.Unlock()
	}

	return pool.Get().([]float32)
}

func (p *FloatPool) Put(buf []float32) {
	if buf == nil {
		return
	}
	key := strconv.Itoa(len(buf))
	p.mu.RLock()
	pool, exists := p.pools[key]
	p.mu.RUnlock()

	if exists {
		pool.Put(buf)
	}
}
