// utils/firebase.go
package utils

import (
	"context"
	"fmt"

	"scrapiz/config"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

var FCMClient *messaging.Client

// FirebaseInit initializes the Firebase App and Messaging client.
// Without FIREBASE_CREDENTIALS_PATH push delivery stays disabled.
func FirebaseInit() error {
	if config.AppConfig.FirebaseCredentialsPath == "" {
		GetLogger().Warn("FIREBASE_CREDENTIALS_PATH not set, push notifications disabled")
		return nil
	}
	ctx := context.Background()
	opt := option.WithCredentialsFile(config.AppConfig.FirebaseCredentialsPath)

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return fmt.Errorf("firebase: error initializing app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return fmt.Errorf("firebase: error getting Messaging client: %w", err)
	}

	FCMClient = client
	return nil
}
