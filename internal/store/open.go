package store

import (
	"context"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/sirupsen/logrus"

	"stocker/internal/config"
)

// Open selects the backend once at startup: DynamoDB when reachable,
// otherwise an in-memory LocalTable. The second return value reports
// whether the local fallback was taken. Every subsequent operation
// behaves identically on either backend.
func Open(ctx context.Context, cfg *config.Config) (Table, bool) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}
	if cfg.AWSAccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		logrus.WithError(err).Warn("AWS config failed, switching to local table")
		return NewLocalTable(), true
	}
	table, err := NewDynamoTable(ctx, dynamodb.NewFromConfig(awsCfg), cfg.TableName)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"table": cfg.TableName,
			"error": err.Error(),
		}).Warn("DynamoDB unreachable, switching to local table")
		return NewLocalTable(), true
	}
	logrus.WithField("table", cfg.TableName).Info("Connected to DynamoDB")
	return table, false
}
