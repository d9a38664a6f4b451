package services

import (
	"context"
	"sync"

	"github.com/malusev998/xrate"
)

// Service archives one date's rates into every configured storage.
type Service struct {
	Reader   xrate.Reader
	Provider xrate.Provider
	Storage  []xrate.Storage
}

func saveToStorage(
	ctx context.Context,
	wg *sync.WaitGroup,
	rates []xrate.Rate,
	data map[string][]xrate.RateWithID,
	storage xrate.Storage,
	errorChannel chan<- error,
	mutex sync.Locker,
) {
	defer wg.Done()
	c, err := storage.Store(ctx, rates)

	if err != nil {
		errorChannel <- err
		return
	}

	mutex.Lock()
	data[storage.GetStorageProviderName()] = c
	mutex.Unlock()
}

func (s Service) Save(ctx context.Context, date xrate.Date, currencies []string) (map[string][]xrate.RateWithID, error) {
	if len(s.Storage) == 0 {
		return nil, ErrNoStorageProvided
	}

	var wg sync.WaitGroup
	mutex := &sync.Mutex{}

	document, err := s.Reader.Rates(ctx, date.Year, date.Month, date.Day)
	if err != nil {
		return nil, err
	}

	rates, err := document.Select(s.Provider, date.Time(), currencies)
	if err != nil {
		return nil, err
	}

	errorChannel := make(chan error, len(s.Storage))
	data := make(map[string][]xrate.RateWithID, len(s.Storage))

	wg.Add(len(s.Storage))
	for _, storage := range s.Storage {
		go saveToStorage(ctx, &wg, rates, data, storage, errorChannel, mutex)
	}

	wg.Wait()
	close(errorChannel)

	if err, more := <-errorChannel; more {
		return nil, err
	}

	return data, nil
}
