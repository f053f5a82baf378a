package usecase

import (
	"context"
	"strings"
	"sync"

	"digitalwardrobe/internal/domain/entity"
	"digitalwardrobe/internal/domain/repository"
	"digitalwardrobe/internal/domain/service"
	"digitalwardrobe/pkg/errors"
)

type OutfitState struct {
	IsLoading    bool
	Outfits      []*entity.Outfit
	ErrorMessage string
}

// OutfitUseCase backs outfit management. Garment references inside an
// outfit are not pruned when a garment is deleted; stale ids are an
// accepted inconsistency.
type OutfitUseCase struct {
	outfits  repository.OutfitRepository
	sessions service.SessionStore

	mu     sync.Mutex
	state  OutfitState
	events chan Event
	closed bool

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewOutfitUseCase(outfits repository.OutfitRepository, sessions service.SessionStore) *OutfitUseCase {
	ctx, cancel := context.WithCancel(context.Background())
	return &OutfitUseCase{
		outfits:  outfits,
		sessions: sessions,
		events:   make(chan Event, eventBuffer),
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (uc *OutfitUseCase) State() OutfitState {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.state
}

func (uc *OutfitUseCase) Events() <-chan Event {
	return uc.events
}

// Start opens the live outfit subscription for the active session.
func (uc *OutfitUseCase) Start() {
	session := uc.sessions.Current()
	if session == nil {
		uc.fail("No user logged in")
		return
	}

	uc.mu.Lock()
	uc.state.IsLoading = true
	uc.state.ErrorMessage = ""
	uc.mu.Unlock()

	stream := uc.outfits.WatchByOwner(uc.ctx, session.UID)

	uc.wg.Add(1)
	go func() {
		defer uc.wg.Done()
		for list := range stream {
			uc.mu.Lock()
			uc.state.IsLoading = false
			if list.Err != nil {
				uc.state.ErrorMessage = errors.Message(list.Err)
			} else {
				uc.state.Outfits = list.Outfits
				uc.state.ErrorMessage = ""
			}
			uc.mu.Unlock()
		}
	}()
}

func (uc *OutfitUseCase) Reload(ctx context.Context) {
	session := uc.sessions.Current()
	if session == nil {
		uc.fail("No user logged in")
		return
	}

	uc.mu.Lock()
	uc.state.IsLoading = true
	uc.state.ErrorMessage = ""
	uc.mu.Unlock()

	outfits, err := uc.outfits.ListByOwner(ctx, session.UID)
	if err != nil {
		uc.fail(errors.Message(err))
		return
	}

	uc.mu.Lock()
	uc.state.IsLoading = false
	uc.state.Outfits = outfits
	uc.mu.Unlock()
}

// Save writes an outfit for the active session. An empty ID creates a
// new document; garment ids are stored as given, in order.
func (uc *OutfitUseCase) Save(ctx context.Context, outfit *entity.Outfit) {
	session := uc.sessions.Current()
	if session == nil {
		uc.fail("No user logged in")
		return
	}
	if strings.TrimSpace(outfit.Name) == "" {
		uc.fail("Please enter a name for the outfit")
		return
	}

	uc.mu.Lock()
	if uc.state.IsLoading {
		uc.mu.Unlock()
		return
	}
	uc.state.IsLoading = true
	uc.state.ErrorMessage = ""
	uc.mu.Unlock()

	outfit.UserID = session.UID
	outfit.Name = strings.TrimSpace(outfit.Name)

	if _, err := uc.outfits.Save(ctx, outfit); err != nil {
		uc.fail(errors.Message(err))
		return
	}

	uc.mu.Lock()
	uc.state.IsLoading = false
	uc.mu.Unlock()
	uc.emit(EventOutfitSaved)
}

func (uc *OutfitUseCase) Delete(ctx context.Context, id string) {
	if err := uc.outfits.Delete(ctx, id); err != nil {
		uc.fail(errors.Message(err))
		return
	}

	uc.mu.Lock()
	uc.state.ErrorMessage = ""
	uc.mu.Unlock()
}

func (uc *OutfitUseCase) Close() {
	uc.cancel()
	uc.wg.Wait()

	uc.mu.Lock()
	if !uc.closed {
		uc.closed = true
		close(uc.events)
	}
	uc.mu.Unlock()
}

func (uc *OutfitUseCase) fail(message string) {
	uc.mu.Lock()
	uc.state.IsLoading = false
	uc.state.ErrorMessage = message
	uc.mu.Unlock()
}

func (uc *OutfitUseCase) emit(event Event) {
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
