package usecase

import (
	"context"
	"io"
	"strings"
	"sync"

	"digitalwardrobe/internal/domain/entity"
	"digitalwardrobe/internal/domain/repository"
	"digitalwardrobe/internal/domain/service"
	"digitalwardrobe/pkg/errors"
)

type GarmentState struct {
	IsLoading      bool
	UploadProgress int
	Garment        *entity.Garment
	NotFound       bool
	ErrorMessage   string
}

// GarmentUseCase backs the add-garment and garment-detail screens:
// photo upload plus metadata write, load, and metadata edit.
type GarmentUseCase struct {
	garments repository.GarmentRepository
	media    service.MediaService
	sessions service.SessionStore

	mu     sync.Mutex
	state  GarmentState
	events chan Event
	closed bool

	// Base context for the save flow. Close cancels it: an upload in
	// flight when the screen is dismissed is canceled, and any terminal
	// event that still lands is dropped by emit.
	ctx    context.Context
	cancel context.CancelFunc
}

func NewGarmentUseCase(garments repository.GarmentRepository, media service.MediaService, sessions service.SessionStore) *GarmentUseCase {
	ctx, cancel := context.WithCancel(context.Background())
	return &GarmentUseCase{
		garments: garments,
		media:    media,
		sessions: sessions,
		events:   make(chan Event, eventBuffer),
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (uc *GarmentUseCase) State() GarmentState {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.state
}

func (uc *GarmentUseCase) Events() <-chan Event {
	return uc.events
}

// Load fetches one garment. An absent document sets NotFound; only a
// transport failure produces an error message.
func (uc *GarmentUseCase) Load(ctx context.Context, id string) {
	if !uc.begin() {
		return
	}

	garment, err := uc.garments.GetByID(ctx, id)
	if err != nil {
		uc.fail(errors.Message(err))
		return
	}

	uc.mu.Lock()
	uc.state.IsLoading = false
	uc.state.Garment = garment
	uc.state.NotFound = garment == nil
	uc.mu.Unlock()
}

// SaveNew runs the add-garment flow: upload the photo, then write the
// document carrying the download URL. The owning user comes from the
// active session.
func (uc *GarmentUseCase) SaveNew(photo io.Reader, size int64, contentType string, garment *entity.Garment) {
	session := uc.sessions.Current()
	if session == nil {
		uc.fail("No user logged in")
		return
	}
	if !garment.ValidateTags() {
		uc.fail("Please select valid garment tags")
		return
	}

	if !uc.begin() {
		return
	}

	var downloadURL string
	stream := uc.media.Upload(uc.ctx, session.UID, service.MediaCategoryGarments, photo, size, contentType)
	for event := range stream {
		switch event.Kind {
		case service.UploadProgress:
			uc.mu.Lock()
			if event.Percent > uc.state.UploadProgress {
				uc.state.UploadProgress = event.Percent
			}
			uc.mu.Unlock()
		case service.UploadFailed:
			uc.resetProgress()
			uc.fail(errors.Message(event.Err))
			return
		case service.UploadDone:
			downloadURL = event.URL
		}
	}
	if downloadURL == "" {
		uc.resetProgress()
		uc.fail("Upload did not complete")
		return
	}

	garment.UserID = session.UID
	garment.ImageURL = downloadURL
	garment.Description = strings.TrimSpace(garment.Description)

	if _, err := uc.garments.Save(uc.ctx, garment); err != nil {
		uc.resetProgress()
		uc.fail(errors.Message(err))
		return
	}

	uc.mu.Lock()
	uc.state.IsLoading = false
	uc.state.UploadProgress = 0
	uc.state.Garment = garment
	uc.state.NotFound = false
	uc.state.ErrorMessage = ""
	uc.mu.Unlock()
	uc.emit(EventGarmentSaved)
}

// UpdateMetadata merges edited tags and description into the existing
// document.
func (uc *GarmentUseCase) UpdateMetadata(ctx context.Context, id string, garmentType entity.GarmentType, color entity.GarmentColor, formality entity.GarmentFormality, fit entity.GarmentFit, description string) {
	if !garmentType.Valid() || !color.Valid() || !formality.Valid() || !fit.Valid() {
		uc.fail("Please select valid garment tags")
		return
	}

	if !uc.begin() {
		return
	}

	fields := map[string]interface{}{
		"type":        garmentType,
		"color":       color,
		"formality":   formality,
		"fit":         fit,
		"description": strings.TrimSpace(description),
	}
	if err := uc.garments.Update(ctx, id, fields); err != nil {
		uc.fail(errors.Message(err))
		return
	}

	uc.mu.Lock()
	uc.state.IsLoading = false
	if uc.state.Garment != nil && uc.state.Garment.ID == id {
		updated := *uc.state.Garment
		updated.Type = garmentType
		updated.Color = color
		updated.Formality = formality
		updated.Fit = fit
		updated.Description = strings.TrimSpace(description)
		uc.state.Garment = &updated
	}
	uc.mu.Unlock()
	uc.emit(EventGarmentSaved)
}

func (uc *GarmentUseCase) ClearError() {
	uc.mu.Lock()
	uc.state.ErrorMessage = ""
	uc.mu.Unlock()
}

func (uc *GarmentUseCase) Close() {
	uc.cancel()
	uc.mu.Lock()
	if !uc.closed {
		uc.closed = true
		close(uc.events)
	}
	uc.mu.Unlock()
}

func (uc *GarmentUseCase) begin() bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.state.IsLoading {
		return false
	}
	uc.state.IsLoading = true
	uc.state.ErrorMessage = ""
	return true
}

func (uc *GarmentUseCase) resetProgress() {
	uc.mu.Lock()
	uc.state.UploadProgress = 0
	uc.mu.Unlock()
}

func (uc *GarmentUseCase) fail(message string) {
	uc.mu.Lock()
	uc.state.IsLoading = false
	uc.state.ErrorMessage = message
	uc.mu.Unlock()
}

func (uc *GarmentUseCase) emit(event Event) {
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
