package output

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/df07/go-sdf-raytracer/pkg/core"
)

// UploadTimeout bounds a single object upload
const UploadTimeout = 30 * time.Second

// Sink stores an encoded image and returns where it went
type Sink interface {
	Save(ctx context.Context, sceneName string, data []byte, format Format) (string, error)
}

// SceneKey reduces a scene name to a single safe path segment made of lowercase
// letters, digits, '-' and '_'. Whitespace becomes '-' and every other rune is dropped.
// Names with nothing left map to "scene".
func SceneKey(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte('-')
		}
	}
	key := strings.Trim(b.String(), "-")
	if key == "" {
		return "scene"
	}
	return key
}

// FileSink writes renders to <Dir>/<scene>/render_<timestamp>.<ext>
type FileSink struct {
	Dir string
	Now func() time.Time
}

// NewFileSink creates a sink rooted at dir
func NewFileSink(dir string) *FileSink {
	return &FileSink{Dir: dir, Now: time.Now}
}

// Path returns the file name a render of sceneName would be saved under.
// sceneName is reduced with SceneKey so the file always lands below Dir.
func (f *FileSink) Path(sceneName string, format Format) string {
	timestamp := f.Now().Format("20060102_150405")
	return filepath.Join(f.Dir, SceneKey(sceneName), fmt.Sprintf("render_%s.%s", timestamp, format.Extension()))
}

// Save writes data to a new timestamped file
func (f *FileSink) Save(ctx context.Context, sceneName string, data []byte, format Format) (string, error) {
	filename := f.Path(sceneName, format)
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return "", fmt.Errorf("error creating output directory: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("error writing %s: %w", filename, err)
	}
	return filename, nil
}

// S3Config holds object storage settings
type S3Config struct {
	AccessKey string
	SecretKey string
	Endpoint  string
	Region    string
	Bucket    string
	Prefix    string
	CDNURL    string
}

// S3ConfigFromEnv reads S3_* variables, after loading envFile when it exists.
// Variables already set in the environment win over the file.
func S3ConfigFromEnv(envFile string) (S3Config, error) {
	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				return S3Config{}, fmt.Errorf("error loading %s: %w", envFile, err)
			}
		}
	}

	cfg := S3Config{
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		Region:    getEnv("S3_REGION", "us-east-1"),
		Bucket:    os.Getenv("S3_BUCKET"),
		Prefix:    getEnv("S3_PREFIX", "renders"),
		CDNURL:    os.Getenv("CDN_URL"),
	}
	if cfg.Bucket == "" {
		return cfg, fmt.Errorf("S3_BUCKET is not set")
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// S3Sink uploads renders to an S3-compatible bucket
type S3Sink struct {
	config S3Config
	client s3iface.S3API
	logger core.Logger
	newKey func() string
}

// NewS3Sink creates a session from config and returns a sink using it
func NewS3Sink(config S3Config, logger core.Logger) (*S3Sink, error) {
	awsConfig := &aws.Config{
		Region:           aws.String(config.Region),
		S3ForcePathStyle: aws.Bool(true),
	}
	if config.AccessKey != "" {
		awsConfig.Credentials = credentials.NewStaticCredentials(config.AccessKey, config.SecretKey, "")
	}
	if config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(config.Endpoint)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}
	return NewS3SinkWithClient(config, s3.New(sess), logger), nil
}

// NewS3SinkWithClient creates a sink around an existing client
func NewS3SinkWithClient(config S3Config, client s3iface.S3API, logger core.Logger) *S3Sink {
	if logger == nil {
		logger = core.NopLogger{}
	}
	return &S3Sink{
		config: config,
		client: client,
		logger: logger,
		newKey: func() string { return uuid.NewString() },
	}
}

// Key returns the object key for a render with the given id
func (s *S3Sink) Key(sceneName, id string, format Format) string {
	key := fmt.Sprintf("%s/%s.%s", SceneKey(sceneName), SceneKey(id), format.Extension())
	if s.config.Prefix != "" {
		key = s.config.Prefix + "/" + key
	}
	return key
}

// URL returns the public location of key
func (s *S3Sink) URL(key string) string {
	if s.config.CDNURL != "" {
		return s.config.CDNURL + "/" + key
	}
	return fmt.Sprintf("s3://%s/%s", s.config.Bucket, key)
}

// Save uploads data under a fresh uuid key and returns its URL
func (s *S3Sink) Save(ctx context.Context, sceneName string, data []byte, format Format) (string, error) {
	return s.SaveAs(ctx, sceneName, s.newKey(), data, format)
}

// SaveAs uploads data under the given id
func (s *S3Sink) SaveAs(ctx context.Context, sceneName, id string, data []byte, format Format) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	key := s.Key(sceneName, id, format)
	size := int64(len(data))
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.config.Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(format.ContentType()),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", key, err)
	}

	s.logger.Infof("Uploaded %s to S3 (%d bytes)", key, size)
	return s.URL(key), nil
}
