// Package cloud wraps the EC2 API: it resolves the instances in scope,
// walks their volumes and snapshots, and drives instance lifecycle changes.
package cloud

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/rs/zerolog/log"
)

// Config holds session settings.
type Config struct {
	Profile     string
	Region      string
	WaitTimeout time.Duration
}

// Client is the single EC2 session shared by every command of one
// invocation. It is never mutated after New.
type Client struct {
	ec2Client   EC2API
	waitTimeout time.Duration
}

// New loads the shared AWS config for the given profile and builds a client.
func New(ctx context.Context, cfg Config) (*Client, error) {
	opts := []func(*config.LoadOptions) error{}
	if cfg.Profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(cfg.Profile))
	}
	if cfg.Region != "" {
		opts = append(opts, config.WithRegion(cfg.Region))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	log.Debug().
		Str("profile", cfg.Profile).
		Str("region", awsCfg.Region).
		Msg("aws session ready")

	return NewWithAPI(ec2.NewFromConfig(awsCfg), cfg.WaitTimeout), nil
}

// NewWithAPI builds a client over an existing EC2 API implementation.
func NewWithAPI(api EC2API, waitTimeout time.Duration) *Client {
	return &Client{ec2Client: api, waitTimeout: waitTimeout}
}
