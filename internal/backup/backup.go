// Package backup snapshots the local cache to S3-compatible object storage
// and restores from a named snapshot. Invoked explicitly, never automatic.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"pos-terminal/internal/models"
	"pos-terminal/internal/store"
)

type Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

type Service struct {
	store *store.Store
	cfg   Config
}

// Snapshot is the on-bucket document: both collections plus the schema
// version they were written under.
type Snapshot struct {
	SchemaVersion string               `json:"schema_version"`
	TakenAt       time.Time            `json:"taken_at"`
	Customers     []models.Customer    `json:"customers"`
	Transactions  []models.Transaction `json:"transactions"`
}

func NewService(st *store.Store, cfg Config) *Service {
	return &Service{store: st, cfg: cfg}
}

func (s *Service) client(ctx context.Context) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.cfg.AccessKey,
			s.cfg.SecretKey,
			"",
		)),
		awsconfig.WithRegion(s.cfg.Region),
	)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if s.cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(s.cfg.Endpoint)
		}
	}), nil
}

// Upload writes a full snapshot and returns its object key.
func (s *Service) Upload(ctx context.Context) (string, error) {
	customers, err := s.store.GetAllCustomers(ctx)
	if err != nil {
		return "", err
	}
	transactions, err := s.store.GetAllTransactions(ctx)
	if err != nil {
		return "", err
	}

	snapshot := Snapshot{
		SchemaVersion: store.SchemaVersion,
		TakenAt:       time.Now().UTC(),
		Customers:     customers,
		Transactions:  transactions,
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", err
	}

	client, err := s.client(ctx)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("snapshots/pos-%s.json", snapshot.TakenAt.Format("20060102-150405"))
	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.cfg.Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("uploading snapshot: %w", err)
	}
	return key, nil
}

// Restore replaces both local collections with the named snapshot's contents.
func (s *Service) Restore(ctx context.Context, key string) error {
	client, err := s.client(ctx)
	if err != nil {
		return err
	}

	result, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("fetching snapshot: %w", err)
	}
	defer result.Body.Close()

	data, err := io.ReadAll(result.Body)
	if err != nil {
		return err
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return fmt.Errorf("decoding snapshot: %w", err)
	}

	if err := s.store.ReplaceAllCustomers(ctx, snapshot.Customers); err != nil {
		return err
	}
	return s.store.ReplaceAllTransactions(ctx, snapshot.Transactions)
}
