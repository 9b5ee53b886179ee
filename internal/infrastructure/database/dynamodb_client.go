package database

import (
	"context"

	"servisku/internal/infrastructure/config"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/rs/zerolog/log"
)

// ConnectDynamoDB creates a DynamoDB client from the aws and dynamodb config
// sections. Static credentials are only used when both keys are set, which is
// what DynamoDB Local needs.
func ConnectDynamoDB(ctx context.Context, awsCfg config.AWSConfig, ddbCfg config.DynamoDBConfig) (*dynamodb.Client, error) {
	cfg, err := NewAWSConfig(ctx, awsCfg)
	if err != nil {
		return nil, err
	}

	var opts []func(*dynamodb.Options)
	if ddbCfg.Endpoint != "" {
		endpoint := ddbCfg.Endpoint
		opts = append(opts, func(o *dynamodb.Options) {
			o.BaseEndpoint = aws.String(endpoint)
		})
	}
	log.Ctx(ctx).Info().Str("region", cfg.Region).Str("endpoint", ddbCfg.Endpoint).Msg("[database] dynamodb client ready")
	return dynamodb.NewFromConfig(cfg, opts...), nil
}

func NewAWSConfig(ctx context.Context, awsCfg config.AWSConfig) (aws.Config, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(awsCfg.Region),
	}
	if awsCfg.AccessKeyID != "" && awsCfg.SecretAccessKey != "" {
		creds := credentials.NewStaticCredentialsProvider(awsCfg.AccessKeyID, awsCfg.SecretAccessKey, "")
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(creds))
	}
	return awsconfig.LoadDefaultConfig(ctx, loadOpts...)
}
