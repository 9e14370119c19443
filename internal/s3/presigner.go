package s3

import (
	"context"
	"strings"
	"time"

	"account-service/internal/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const uploadURLTTL = 15 * time.Minute

// FilePresigner hands out short-lived PUT URLs so clients upload avatars
// straight to the bucket.
type FilePresigner struct {
	S3PresignClient *s3.PresignClient
	BucketName      string
	publicBaseURL   string
}

func NewFilePresigner(ctx context.Context, cfg config.S3Config) (*FilePresigner, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(
		ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")),
	)

	if err != nil {
		return nil, err
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	base := strings.TrimSuffix(cfg.Endpoint, "/") + "/" + cfg.BucketName
	if cfg.Endpoint == "" {
		base = "https://" + cfg.BucketName + ".s3." + cfg.Region + ".amazonaws.com"
	}

	return &FilePresigner{
		S3PresignClient: s3.NewPresignClient(s3Client),
		BucketName:      cfg.BucketName,
		publicBaseURL:   base,
	}, nil
}

// AvatarObjectKey returns a fresh key under the user's avatar prefix.
func AvatarObjectKey(userID uuid.UUID) string {
	return "user-avatars/" + userID.String() + "/" + uuid.NewString() + ".jpg"
}

func (p *FilePresigner) GeneratePresignedUploadURL(ctx context.Context, objectKey string) (string, error) {
	request, err := p.S3PresignClient.PresignPutObject(
		ctx,
		&s3.PutObjectInput{
			Bucket: aws.String(p.BucketName),
			Key:    aws.String(objectKey),
		},
		func(opts *s3.PresignOptions) {
			opts.Expires = uploadURLTTL
		},
	)

	if err != nil {
		return "", err
	}

	return request.URL, nil
}

// PublicURL is where the object will be readable once uploaded.
func (p *FilePresigner) PublicURL(objectKey string) string {
	return p.publicBaseURL + "/" + objectKey
}
