package samplestore

import "sync"

// MemStore keeps samples in memory. Copies share the same samples.
type MemStore struct {
	mutex   *sync.RWMutex
	samples *[]Sample
}

func NewMemStore() MemStore {
	return MemStore{
		mutex:   &sync.RWMutex{},
		samples: &[]Sample{},
	}
}

func (m MemStore) Record(sample Sample) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	*m.samples = append(*m.samples, sample)
	return nil
}

func (m MemStore) Recent(limit int) ([]Sample, error) {
	return m.newest(limit, func(Sample) bool { return true }), nil
}

func (m MemStore) Unparsed(limit int) ([]Sample, error) {
	return m.newest(limit, func(s Sample) bool { return !s.Parseable() }), nil
}

func (m MemStore) Counts() (map[string]int, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	counts := make(map[string]int)
	for _, sample := range *m.samples {
		counts[sample.Format]++
	}
	return counts, nil
}

func (m MemStore) Close() error {
	return nil
}

func (m MemStore) newest(limit int, include func(Sample) bool) []Sample {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	limit = limitOrDefault(limit)
	out := make([]Sample, 0)
	for i := len(*m.samples) - 1; i >= 0 && len(out) < limit; i-- {
		if sample := (*m.samples)[i]; include(sample) {
			out = append(out, sample)
		}
	}
	return out
}
