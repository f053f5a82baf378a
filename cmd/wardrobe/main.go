package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"

	fbapp "firebase.google.com/go/v4"

	"digitalwardrobe/internal/adapter/repository"
	"digitalwardrobe/internal/infrastructure/firebase"
	"digitalwardrobe/internal/infrastructure/storage"
	"digitalwardrobe/internal/usecase"
	"digitalwardrobe/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	var opts []option.ClientOption
	if cfg.ServiceAccountPath != "" {
		if _, err := os.Stat(cfg.ServiceAccountPath); os.IsNotExist(err) {
			log.Fatalf("Service account file does not exist: %s", cfg.ServiceAccountPath)
		}
		opts = append(opts, option.WithCredentialsFile(cfg.ServiceAccountPath))
	}

	firebaseApp, err := fbapp.NewApp(ctx, &fbapp.Config{ProjectID: cfg.FirebaseProject}, opts...)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase: %v", err)
	}

	adminAuth, err := firebaseApp.Auth(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize Firebase Auth: %v", err)
	}

	firestoreClient, err := firestore.NewClient(ctx, cfg.FirebaseProject, opts...)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	mediaClient, err := storage.NewMediaClient(ctx, cfg.StorageBucket, cfg.ServiceAccountPath)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage: %v", err)
	}
	defer mediaClient.Close()

	userRepo := repository.NewFirestoreUserRepository(firestoreClient)
	garmentRepo := repository.NewFirestoreGarmentRepository(firestoreClient)
	outfitRepo := repository.NewFirestoreOutfitRepository(firestoreClient)

	authClient := firebase.NewAuthClient(adminAuth, cfg.FirebaseApiKey)
	sessions := firebase.NewSessionManager()

	authUseCase := usecase.NewAuthUseCase(authClient, userRepo, sessions)
	defer authUseCase.Close()

	wardrobeUseCase := usecase.NewWardrobeUseCase(garmentRepo, mediaClient, sessions)
	defer wardrobeUseCase.Close()

	garmentUseCase := usecase.NewGarmentUseCase(garmentRepo, mediaClient, sessions)
	defer garmentUseCase.Close()

	outfitUseCase := usecase.NewOutfitUseCase(outfitRepo, sessions)
	defer outfitUseCase.Close()

	profileUseCase := usecase.NewProfileUseCase(authClient, userRepo, sessions)
	defer profileUseCase.Close()

	stream, unsubscribe := sessions.Subscribe()
	defer unsubscribe()

	go func() {
		for session := range stream {
			if session == nil {
				log.Printf("Session: signed out")
				continue
			}
			log.Printf("Session: %s (%s)", session.UID, session.Email)
		}
	}()

	log.Printf("Digital Wardrobe core started (project %s)", cfg.FirebaseProject)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Printf("Shutting down")
}
