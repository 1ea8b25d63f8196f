package service

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

// NewFirebaseApp initializes a Firebase App. With an empty credentialsPath the
// Application Default Credentials of the runtime are used.
func NewFirebaseApp(ctx context.Context, projectID, credentialsPath string) (*firebase.App, error) {
	var fbCfg *firebase.Config
	if projectID != "" {
		fbCfg = &firebase.Config{ProjectID: projectID}
	}

	var opts []option.ClientOption
	if credentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsPath))
	}

	app, err := firebase.NewApp(ctx, fbCfg, opts...)
	if err != nil {
		if credentialsPath != "" {
			return nil, fmt.Errorf("error initializing Firebase App from '%s': %w", credentialsPath, err)
		}
		return nil, fmt.Errorf("error initializing Firebase App: %w", err)
	}
	return app, nil
}
