package benchmark

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/de-tools/fin-atlas/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const yamlDataset = `
default_code: T
categories:
  - id: 8
    code: T
    name: その他
    level: major
benchmarks:
  - category_id: 8
    sample_size: 10
    data_year: 2023
    last_updated: "2024-03-01"
    values:
      returnOnAssets: 3.5
`

const jsonDataset = `{
  "default_code": "T",
  "categories": [{"id": 8, "code": "T", "name": "その他", "level": "major"}],
  "benchmarks": [{"category_id": 8, "values": {"returnOnAssets": 3.5}}]
}`

func TestParseDataset(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		format  Format
		wantErr bool
	}{
		{name: "yaml", data: yamlDataset, format: FormatYAML},
		{name: "json", data: jsonDataset, format: FormatJSON},
		{name: "unknown field", data: "default_code: T\nbogus: 1\n", format: FormatYAML, wantErr: true},
		{name: "invalid level", data: "categories:\n  - id: 1\n    code: A\n    level: huge\n", format: FormatYAML, wantErr: true},
		{name: "invalid date", data: `{"benchmarks":[{"category_id":1,"last_updated":"March"}]}`, format: FormatJSON, wantErr: true},
		{name: "unsupported format", data: "", format: "xml", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ds, err := ParseDataset([]byte(tc.data), tc.format)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "T", ds.DefaultCode)
			require.Len(t, ds.Categories, 1)
			require.Len(t, ds.Benchmarks, 1)
			assert.Equal(t, 3.5, ds.Benchmarks[0].Values[domain.BenchmarkReturnOnAssets])
		})
	}
}

func TestFileLoader(t *testing.T) {
	dir := t.TempDir()

	for name, content := range map[string]string{"bench.yaml": yamlDataset, "bench.json": jsonDataset} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

			repo, err := Load(context.Background(), NewFileLoader(path))

			require.NoError(t, err)
			assert.Equal(t, "T", repo.Default().Code)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := NewFileLoader(filepath.Join(dir, "missing.yaml")).Load(context.Background())
		assert.Error(t, err)
	})
}

type mockObjectGetter struct {
	mock.Mock
}

func (m *mockObjectGetter) GetObject(
	ctx context.Context,
	params *s3.GetObjectInput,
	optFns ...func(*s3.Options),
) (*s3.GetObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.GetObjectOutput), args.Error(1)
}

func TestS3Loader(t *testing.T) {
	ctx := context.Background()
	settings := S3Settings{Bucket: "reference-data", Key: "benchmarks/2023.yaml"}

	t.Run("success", func(t *testing.T) {
		client := new(mockObjectGetter)
		client.On("GetObject", mock.Anything, mock.MatchedBy(func(in *s3.GetObjectInput) bool {
			return *in.Bucket == "reference-data" && *in.Key == "benchmarks/2023.yaml"
		})).Return(&s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(yamlDataset))}, nil)

		ds, err := NewS3Loader(client, settings).Load(ctx)

		require.NoError(t, err)
		assert.Len(t, ds.Benchmarks, 1)
		client.AssertExpectations(t)
	})

	t.Run("client error", func(t *testing.T) {
		client := new(mockObjectGetter)
		client.On("GetObject", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

		_, err := NewS3Loader(client, settings).Load(ctx)

		assert.ErrorContains(t, err, "access denied")
	})

	t.Run("missing settings", func(t *testing.T) {
		_, err := NewS3Loader(new(mockObjectGetter), S3Settings{}).Load(ctx)
		assert.Error(t, err)
	})
}
