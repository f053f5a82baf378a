package usecase

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"digitalwardrobe/internal/domain/entity"
	"digitalwardrobe/internal/domain/repository"
	"digitalwardrobe/internal/domain/service"
	"digitalwardrobe/internal/infrastructure/firebase"
)

func signedInSessions(uid, email, name string) *firebase.SessionManager {
	sessions := firebase.NewSessionManager()
	sessions.Set(&service.Session{UID: uid, Email: email, DisplayName: name, IDToken: "token"})
	return sessions
}

func signedOutSessions() *firebase.SessionManager {
	return firebase.NewSessionManager()
}

type fakeAuthService struct {
	mu sync.Mutex

	signInCalls      int
	signUpCalls      int
	resetCalls       int
	displayNameCalls int

	signInErr      error
	signUpErr      error
	resetErr       error
	displayNameErr error

	signInBlock chan struct{}

	lastDisplayName string
}

func (f *fakeAuthService) SignIn(ctx context.Context, email, password string) (*service.Session, error) {
	f.mu.Lock()
	f.signInCalls++
	block := f.signInBlock
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return &service.Session{UID: "u1", Email: email, IDToken: "token"}, nil
}

func (f *fakeAuthService) SignUp(ctx context.Context, email, password, displayName string) (*service.Session, error) {
	f.mu.Lock()
	f.signUpCalls++
	f.mu.Unlock()
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	return &service.Session{UID: "u1", Email: email, DisplayName: displayName, IDToken: "token"}, nil
}

func (f *fakeAuthService) SendPasswordReset(ctx context.Context, email string) error {
	f.mu.Lock()
	f.resetCalls++
	f.mu.Unlock()
	return f.resetErr
}

func (f *fakeAuthService) UpdateDisplayName(ctx context.Context, uid, displayName string) error {
	f.mu.Lock()
	f.displayNameCalls++
	f.lastDisplayName = displayName
	f.mu.Unlock()
	return f.displayNameErr
}

func (f *fakeAuthService) calls() (signIn, signUp, reset, displayName int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.signInCalls, f.signUpCalls, f.resetCalls, f.displayNameCalls
}

type fakeUserRepo struct {
	mu sync.Mutex

	users     map[string]*entity.User
	createErr error
	getErr    error
	updateErr error
	updates   []map[string]interface{}
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates = append(f.updates, fields)
	return nil
}

// fakeGarmentRepo mirrors the Firestore adapter contract: empty ids get
// fresh backend-style ids, absence is (nil, nil), owner lists come back
// newest first.
type fakeGarmentRepo struct {
	mu sync.Mutex

	seq      int
	clock    time.Time
	garments map[string]*entity.Garment

	saveErr   error
	getErr    error
	listErr   error
	updateErr error
	deleteErr error

	deleted []string
	watchCh chan repository.GarmentList
}

func newFakeGarmentRepo() *fakeGarmentRepo {
	return &fakeGarmentRepo{
		clock:    time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		garments: make(map[string]*entity.Garment),
	}
}

func (f *fakeGarmentRepo) Save(ctx context.Context, garment *entity.Garment) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if garment.ID == "" {
		f.seq++
		garment.ID = fmt.Sprintf("garment-%d", f.seq)
	}
	f.clock = f.clock.Add(time.Second)
	if garment.CreatedAt.IsZero() {
		garment.CreatedAt = f.clock
	}
	garment.UpdatedAt = f.clock
	clone := *garment
	f.garments[garment.ID] = &clone
	return garment.ID, nil
}

func (f *fakeGarmentRepo) GetByID(ctx context.Context, id string) (*entity.Garment, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	garment, ok := f.garments[id]
	if !ok {
		return nil, nil
	}
	clone := *garment
	return &clone, nil
}

func (f *fakeGarmentRepo) ListByOwner(ctx context.Context, userID string) ([]*entity.Garment, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Garment
	for _, garment := range f.garments {
		if garment.UserID == userID {
			clone := *garment
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeGarmentRepo) WatchByOwner(ctx context.Context, userID string) <-chan repository.GarmentList {
	return f.watchCh
}

func (f *fakeGarmentRepo) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	return f.updateErr
}

func (f *fakeGarmentRepo) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.garments, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeOutfitRepo struct {
	mu sync.Mutex

	seq     int
	outfits map[string]*entity.Outfit

	saveErr   error
	deleteErr error
	watchCh   chan repository.OutfitList
}

func newFakeOutfitRepo() *fakeOutfitRepo {
	return &fakeOutfitRepo{outfits: make(map[string]*entity.Outfit)}
}

func (f *fakeOutfitRepo) Save(ctx context.Context, outfit *entity.Outfit) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if outfit.ID == "" {
		f.seq++
		outfit.ID = fmt.Sprintf("outfit-%d", f.seq)
	}
	clone := *outfit
	f.outfits[outfit.ID] = &clone
	return outfit.ID, nil
}

func (f *fakeOutfitRepo) GetByID(ctx context.Context, id string) (*entity.Outfit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	outfit, ok := f.outfits[id]
	if !ok {
		return nil, nil
	}
	clone := *outfit
	return &clone, nil
}

func (f *fakeOutfitRepo) ListByOwner(ctx context.Context, userID string) ([]*entity.Outfit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*entity.Outfit
	for _, outfit := range f.outfits {
		if outfit.UserID == userID {
			clone := *outfit
			out = append(out, &clone)
		}
	}
	return out, nil
}

func (f *fakeOutfitRepo) WatchByOwner(ctx context.Context, userID string) <-chan repository.OutfitList {
	return f.watchCh
}

func (f *fakeOutfitRepo) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	return nil
}

func (f *fakeOutfitRepo) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.outfits, id)
	return nil
}

type fakeMedia struct {
	mu sync.Mutex

	events      []service.UploadEvent
	uploadCalls int
	deleteErr   error
	deleted     []string
}

func (f *fakeMedia) Upload(ctx context.Context, userID, category string, r io.Reader, size int64, contentType string) <-chan service.UploadEvent {
	f.mu.Lock()
	f.uploadCalls++
	f.mu.Unlock()
	out := make(chan service.UploadEvent, len(f.events))
	for _, event := range f.events {
		out <- event
	}
	close(out)
	return out
}

func (f *fakeMedia) Delete(ctx context.Context, downloadURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, downloadURL)
	return f.deleteErr
}
