package usecase

import (
	"context"
	"sync"

	"digitalwardrobe/internal/domain/entity"
	"digitalwardrobe/internal/domain/repository"
	"digitalwardrobe/internal/domain/service"
	"digitalwardrobe/pkg/errors"
	"digitalwardrobe/pkg/logger"
)

type WardrobeState struct {
	IsLoading    bool
	Garments     []*entity.Garment
	ErrorMessage string
}

// WardrobeUseCase backs the wardrobe grid: a live view of the owner's
// garments plus deletion.
type WardrobeUseCase struct {
	garments repository.GarmentRepository
	media    service.MediaService
	sessions service.SessionStore

	mu     sync.Mutex
	state  WardrobeState
	events chan Event
	closed bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewWardrobeUseCase(garments repository.GarmentRepository, media service.MediaService, sessions service.SessionStore) *WardrobeUseCase {
	ctx, cancel := context.WithCancel(context.Background())
	return &WardrobeUseCase{
		garments: garments,
		media:    media,
		sessions: sessions,
		events:   make(chan Event, eventBuffer),
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (uc *WardrobeUseCase) State() WardrobeState {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.state
}

func (uc *WardrobeUseCase) Events() <-chan Event {
	return uc.events
}

// Start opens the live garment subscription for the active session.
// Every server-side change redelivers the full list. The subscription
// lives until Close.
func (uc *WardrobeUseCase) Start() {
	session := uc.sessions.Current()
	if session == nil {
		uc.fail("No user logged in")
		return
	}

	uc.mu.Lock()
	uc.state.IsLoading = true
	uc.state.ErrorMessage = ""
	uc.mu.Unlock()

	stream := uc.garments.WatchByOwner(uc.ctx, session.UID)

	uc.wg.Add(1)
	go func() {
		defer uc.wg.Done()
		for list := range stream {
			uc.mu.Lock()
			uc.state.IsLoading = false
			if list.Err != nil {
				uc.state.ErrorMessage = errors.Message(list.Err)
			} else {
				uc.state.Garments = list.Garments
				uc.state.ErrorMessage = ""
			}
			uc.mu.Unlock()
		}
	}()
}

// Reload is the one-shot fallback for screens that do not hold a live
// subscription.
func (uc *WardrobeUseCase) Reload(ctx context.Context) {
	session := uc.sessions.Current()
	if session == nil {
		uc.fail("No user logged in")
		return
	}

	uc.mu.Lock()
	uc.state.IsLoading = true
	uc.state.ErrorMessage = ""
	uc.mu.Unlock()

	garments, err := uc.garments.ListByOwner(ctx, session.UID)
	if err != nil {
		uc.fail(errors.Message(err))
		return
	}

	uc.mu.Lock()
	uc.state.IsLoading = false
	uc.state.Garments = garments
	uc.mu.Unlock()
}

// DeleteGarment removes the document first; the backing media object is
// deleted best-effort afterwards. A media failure does not undo or
// report against the already-deleted document.
func (uc *WardrobeUseCase) DeleteGarment(ctx context.Context, id string) {
	garment, err := uc.garments.GetByID(ctx, id)
	if err != nil {
		uc.fail(errors.Message(err))
		return
	}
	if garment == nil {
		uc.fail("Garment not found")
		return
	}

	if err := uc.garments.Delete(ctx, id); err != nil {
		uc.fail(errors.Message(err))
		return
	}

	if garment.ImageURL != "" {
		if err := uc.media.Delete(ctx, garment.ImageURL); err != nil {
			logger.Warn("Media delete for garment %s failed: %v", id, err)
		}
	}

	uc.mu.Lock()
	uc.state.ErrorMessage = ""
	uc.mu.Unlock()
	uc.emit(EventGarmentDeleted)
}

func (uc *WardrobeUseCase) Close() {
	uc.cancel()
	uc.wg.Wait()

	uc.mu.Lock()
	if !uc.closed {
		uc.closed = true
		close(uc.events)
	}
	uc.mu.Unlock()
}

func (uc *WardrobeUseCase) fail(message string) {
	uc.mu.Lock()
	uc.state.IsLoading = false
	uc.state.ErrorMessage = message
	uc.mu.Unlock()
}

func (uc *WardrobeUseCase) emit(event Event) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.closed {
		return
	}
	select {
	case uc.events <- event:
	default:
	}
}
