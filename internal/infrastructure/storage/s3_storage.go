package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	uperrors "media-uploader/pkg/errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"golang.org/x/sync/singleflight"

	"github.com/google/uuid"
)

// S3Storage ObjectStorage kontratının S3 multipart implementasyonu.
// Client lazy kurulur ve remote reddedene kadar cache'lenir; eşzamanlı
// refresh denemeleri singleflight ile tek refresh'e indirgenir.
type S3Storage struct {
	bucketName string
	region     string
	loadConfig func(ctx context.Context) (aws.Config, error)

	mu     sync.Mutex
	client *s3.Client
	sf     singleflight.Group

	smu      sync.Mutex
	sessions map[string]*multipartSession
}

// Bir UploadOperation'ın remote transferiyle 1:1; finalize ile mühürlenir.
type multipartSession struct {
	key      string
	uploadID string
	sealed   bool
}

func NewS3Storage(bucketName, region string) *S3Storage {
	return &S3Storage{
		bucketName: bucketName,
		region:     region,
		loadConfig: func(ctx context.Context) (aws.Config, error) {
			return config.LoadDefaultConfig(ctx, config.WithRegion(region))
		},
		sessions: make(map[string]*multipartSession),
	}
}

// Authorize client'ı lazy kurar. İlk çağrı credential'ları yükler,
// sonraki çağrılar cache'lenmiş client'ı kullanır.
func (s *S3Storage) Authorize(ctx context.Context) error {
	_, err := s.ensureClient(ctx)
	return err
}

func (s *S3Storage) ensureClient(ctx context.Context) (*s3.Client, error) {
	s.mu.Lock()
	if s.client != nil {
		client := s.client
		s.mu.Unlock()
		return client, nil
	}
	s.mu.Unlock()

	// Eşzamanlı authorize denemeleri tek refresh'te birleşir
	v, err, _ := s.sf.Do("authorize", func() (interface{}, error) {
		// Önceki flight client'ı kurmuş olabilir; ikinci kez yüklenmez
		s.mu.Lock()
		if s.client != nil {
			client := s.client
			s.mu.Unlock()
			return client, nil
		}
		s.mu.Unlock()

		cfg, err := s.loadConfig(ctx)
		if err != nil {
			return nil, fmt.Errorf("AWS config yüklenemedi: %w", err)
		}
		client := s3.NewFromConfig(cfg)

		s.mu.Lock()
		s.client = client
		s.mu.Unlock()
		return client, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*s3.Client), nil
}

// invalidate cache'lenmiş client'ı düşürür; bir sonraki çağrı yeniden authorize eder
func (s *S3Storage) invalidate() {
	s.mu.Lock()
	s.client = nil
	s.mu.Unlock()
}

func isAuthError(err error) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	switch apiErr.ErrorCode() {
	case "ExpiredToken", "InvalidAccessKeyId", "TokenRefreshRequired", "AccessDenied":
		return true
	}
	return false
}

func (s *S3Storage) OpenMultipart(ctx context.Context, name string) (string, error) {
	client, err := s.ensureClient(ctx)
	if err != nil {
		return "", err
	}

	out, err := client.CreateMultipartUpload(ctx, &s3.CreateMultipartUploadInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(name),
	})
	if err != nil {
		if isAuthError(err) {
			s.invalidate()
		}
		return "", fmt.Errorf("multipart oturumu açılamadı: %w", err)
	}

	sessionID := uuid.New().String()
	s.smu.Lock()
	s.sessions[sessionID] = &multipartSession{
		key:      name,
		uploadID: aws.ToString(out.UploadId),
	}
	s.smu.Unlock()

	return sessionID, nil
}

func (s *S3Storage) lookupSession(sessionID string) (*multipartSession, error) {
	s.smu.Lock()
	defer s.smu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, uperrors.ErrSessionNotFound(fmt.Errorf("session %s", sessionID))
	}
	return sess, nil
}

func (s *S3Storage) UploadPart(ctx context.Context, sessionID string, index int, data []byte) (string, error) {
	sess, err := s.lookupSession(sessionID)
	if err != nil {
		return "", err
	}

	client, err := s.ensureClient(ctx)
	if err != nil {
		return "", err
	}

	// S3 part numaraları 1'den başlar
	out, err := client.UploadPart(ctx, &s3.UploadPartInput{
		Bucket:     aws.String(s.bucketName),
		Key:        aws.String(sess.key),
		UploadId:   aws.String(sess.uploadID),
		PartNumber: aws.Int32(int32(index + 1)),
		Body:       bytes.NewReader(data),
	})
	if err != nil {
		if isAuthError(err) {
			s.invalidate()
		}
		return "", err
	}
	return aws.ToString(out.ETag), nil
}

// Finalize call-once'dır: mühürlenmiş oturuma ikinci çağrı protokol hatasıdır.
func (s *S3Storage) Finalize(ctx context.Context, sessionID string, orderedPartIDs []string) (string, error) {
	s.smu.Lock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		s.smu.Unlock()
		return "", uperrors.ErrSessionNotFound(fmt.Errorf("session %s", sessionID))
	}
	if sess.sealed {
		s.smu.Unlock()
		return "", uperrors.ErrAlreadyFinalized(fmt.Errorf("session %s", sessionID))
	}
	sess.sealed = true
	s.smu.Unlock()

	client, err := s.ensureClient(ctx)
	if err != nil {
		return "", err
	}

	parts := make([]types.CompletedPart, 0, len(orderedPartIDs))
	for i, id := range orderedPartIDs {
		parts = append(parts, types.CompletedPart{
			ETag:       aws.String(id),
			PartNumber: aws.Int32(int32(i + 1)),
		})
	}

	out, err := client.CompleteMultipartUpload(ctx, &s3.CompleteMultipartUploadInput{
		Bucket:          aws.String(s.bucketName),
		Key:             aws.String(sess.key),
		UploadId:        aws.String(sess.uploadID),
		MultipartUpload: &types.CompletedMultipartUpload{Parts: parts},
	})
	if err != nil {
		if isAuthError(err) {
			s.invalidate()
		}
		return "", fmt.Errorf("multipart tamamlanamadı: %w", err)
	}

	// Remote'un atadığı kalıcı id olarak ETag döner
	return aws.ToString(out.ETag), nil
}

// AbortMultipart terk edilmiş bir oturumun manuel admin temizliği içindir.
func (s *S3Storage) AbortMultipart(ctx context.Context, sessionID string) error {
	sess, err := s.lookupSession(sessionID)
	if err != nil {
		return err
	}

	client, err := s.ensureClient(ctx)
	if err != nil {
		return err
	}

	_, err = client.AbortMultipartUpload(ctx, &s3.AbortMultipartUploadInput{
		Bucket:   aws.String(s.bucketName),
		Key:      aws.String(sess.key),
		UploadId: aws.String(sess.uploadID),
	})
	if err != nil {
		return fmt.Errorf("multipart iptal edilemedi: %w", err)
	}

	s.smu.Lock()
	delete(s.sessions, sessionID)
	s.smu.Unlock()
	return nil
}

func (s *S3Storage) Upload(ctx context.Context, name string, body io.Reader) (string, error) {
	client, err := s.ensureClient(ctx)
	if err != nil {
		return "", err
	}

	_, err = client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(name),
		Body:   body,
	})
	if err != nil {
		if isAuthError(err) {
			s.invalidate()
		}
		return "", fmt.Errorf("S3 upload hatası: %w", err)
	}

	return s.DeriveURL(name), nil
}

// URL isimden deterministik türetilir, ekstra round trip yok
func (s *S3Storage) DeriveURL(name string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucketName, s.region, name)
}

func (s *S3Storage) Delete(ctx context.Context, name, fileID string) error {
	client, err := s.ensureClient(ctx)
	if err != nil {
		return err
	}

	_, err = client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(name),
	})
	return err
}
