package config

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/rs/zerolog/log"
)

// SSMPathKey names the Parameter Store path whose parameters are merged
// into the config map at startup.
const SSMPathKey = "AWS_SSM_PARAMETER_PATH"

// LoadFromSSM overlays the parameters stored under AWS_SSM_PARAMETER_PATH
// onto c. It is a no-op when the path is not configured.
func LoadFromSSM(ctx context.Context, c map[string]string) error {
	parameterPath := GetString(c, SSMPathKey, "")
	if parameterPath == "" {
		return nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("loading AWS config: %w", err)
	}

	n, err := MergeSSMParameters(ctx, ssm.NewFromConfig(awsCfg), parameterPath, c)
	if err != nil {
		return err
	}
	log.Info().Str("path", parameterPath).Int("parameters", n).Msg("Loaded configuration from SSM")
	return nil
}

// MergeSSMParameters copies every parameter under parameterPath into c,
// keyed by the upper-cased last path segment. Keys already present in c win,
// so a value exported in the environment overrides the stored one. It
// returns how many keys were added.
func MergeSSMParameters(ctx context.Context, client ssm.GetParametersByPathAPIClient, parameterPath string, c map[string]string) (int, error) {
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(parameterPath),
		Recursive:      aws.Bool(true),
		WithDecryption: aws.Bool(true),
	})

	added := 0
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return added, fmt.Errorf("reading SSM parameters under %s: %w", parameterPath, err)
		}
		for _, param := range page.Parameters {
			key := strings.ToUpper(path.Base(aws.ToString(param.Name)))
			if _, exists := c[key]; exists {
				continue
			}
			c[key] = aws.ToString(param.Value)
			added++
		}
	}
	return added, nil
}
