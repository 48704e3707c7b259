package storage_test

import (
	"testing"

	"shopify-sync/core/storage"

	"github.com/stretchr/testify/assert"
)

func TestNewClient(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    false,
			Bucket:    "test-bucket",
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithHTTP", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "http://localhost:9000",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    false,
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})

	t.Run("EndpointWithHTTPS", func(t *testing.T) {
		cfg := storage.Config{
			Endpoint:  "https://s3.amazonaws.com",
			AccessKey: "testkey",
			SecretKey: "testsecret",
			UseSSL:    true,
			Region:    "us-east-1",
		}

		client, err := storage.NewClient(cfg)
		assert.NoError(t, err)
		assert.NotNil(t, client)
	})
}

func TestEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		cfg        storage.Config
		wantHost   string
		wantSecure bool
	}{
		{"Bare", storage.Config{Endpoint: "localhost:9000"}, "localhost:9000", false},
		{"BareSSL", storage.Config{Endpoint: "minio.internal", UseSSL: true}, "minio.internal", true},
		{"HTTP", storage.Config{Endpoint: "http://localhost:9000/"}, "localhost:9000", false},
		{"HTTPSForcesTLS", storage.Config{Endpoint: "https://s3.amazonaws.com"}, "s3.amazonaws.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			host, secure := storage.Endpoint(tt.cfg)
			assert.Equal(t, tt.wantHost, host)
			assert.Equal(t, tt.wantSecure, secure)
		})
	}
}
