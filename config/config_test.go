package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReadsEnvironment(t *testing.T) {
	t.Setenv("PORTFOLIO_TEST_KEY", "a=b")

	c := New()
	assert.Equal(t, "a=b", c["PORTFOLIO_TEST_KEY"])
}

func TestGetters(t *testing.T) {
	c := map[string]string{
		"PORT":     "9090",
		"BAD_INT":  "nine",
		"EMPTY":    "",
		"FLAG":     "true",
		"TIMEOUT":  "5",
		"BAD_BOOL": "maybe",
	}

	assert.Equal(t, 9090, GetInt(c, "PORT", 8080))
	assert.Equal(t, 8080, GetInt(c, "BAD_INT", 8080))
	assert.Equal(t, "fallback", GetString(c, "EMPTY", "fallback"))
	assert.Equal(t, "fallback", GetString(nil, "PORT", "fallback"))
	assert.True(t, GetBool(c, "FLAG", false))
	assert.False(t, GetBool(c, "BAD_BOOL", false))
	assert.Equal(t, 5*time.Second, GetSeconds(c, "TIMEOUT", 20))
	assert.Equal(t, 20*time.Second, GetSeconds(c, "MISSING", 20))
}

type fakeSSM struct {
	pages map[string]*ssm.GetParametersByPathOutput
	err   error
	calls int
}

func (f *fakeSSM) GetParametersByPath(_ context.Context, in *ssm.GetParametersByPathInput, _ ...func(*ssm.Options)) (*ssm.GetParametersByPathOutput, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.pages[aws.ToString(in.NextToken)], nil
}

func TestMergeSSMParameters(t *testing.T) {
	client := &fakeSSM{pages: map[string]*ssm.GetParametersByPathOutput{
		"": {
			Parameters: []types.Parameter{
				{Name: aws.String("/portfolio/prod/gmail_user"), Value: aws.String("relay@example.com")},
				{Name: aws.String("/portfolio/prod/PORT"), Value: aws.String("1111")},
			},
			NextToken: aws.String("page-2"),
		},
		"page-2": {
			Parameters: []types.Parameter{
				{Name: aws.String("/portfolio/prod/jwt_secret"), Value: aws.String("s3cr3t")},
			},
		},
	}}

	c := map[string]string{"PORT": "8080"}
	added, err := MergeSSMParameters(context.Background(), client, "/portfolio/prod", c)
	require.NoError(t, err)

	assert.Equal(t, 2, added)
	assert.Equal(t, 2, client.calls)
	assert.Equal(t, "relay@example.com", c["GMAIL_USER"])
	assert.Equal(t, "s3cr3t", c["JWT_SECRET"])
	assert.Equal(t, "8080", c["PORT"], "environment must win over SSM")
}

func TestMergeSSMParametersError(t *testing.T) {
	client := &fakeSSM{err: errors.New("access denied")}
	_, err := MergeSSMParameters(context.Background(), client, "/portfolio", map[string]string{})
	assert.ErrorContains(t, err, "access denied")
}

func TestLoadFromSSMWithoutPathIsNoop(t *testing.T) {
	assert.NoError(t, LoadFromSSM(context.Background(), map[string]string{}))
}
