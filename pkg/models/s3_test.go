package models_test

import (
	"testing"

	"github.com/lsftools/lsbacct/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseS3Path(t *testing.T) {
	t.Run("Bucket and key", func(tt *testing.T) {
		obj, err := models.ParseS3Path("ap-northeast-1", "s3://blue/path/to/lsb.acct.1")
		require.NoError(tt, err)
		assert.Equal(tt, "blue", obj.Bucket)
		assert.Equal(tt, "path/to/lsb.acct.1", obj.Key)
		assert.Equal(tt, "ap-northeast-1", obj.Region)
		assert.Equal(tt, "s3://blue/path/to/lsb.acct.1", obj.Path())
	})

	t.Run("Invalid paths", func(tt *testing.T) {
		for _, p := range []string{"blue/key", "s3://blue", "s3://blue/", "s3:///key"} {
			obj, err := models.ParseS3Path("", p)
			assert.Error(tt, err, p)
			assert.Nil(tt, obj)
		}
	})
}
