package response_test

import (
	"encoding/json"
	"strings"
	"testing"

	"file-gateway/core/response"

	"github.com/code19m/errx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantErr bool
	}{
		{"Success", "0", false},
		{"Composite", "FS0002", false},
		{"Empty", "", true},
		{"OneCharNotSuccess", "1", true},
		{"FourChars", "0002", true},
		{"FiveChars", "F0002", true},
		{"SevenChars", "FSX0002", true},
		{"MultibyteSixChars", "éé0007", false},
		{"MultibyteSixBytes", "ééé", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := response.New[string](tt.code, "msg")
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errx.IsCodeIn(err, response.CodeInvalidResponseCode))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.code, resp.Code())
			assert.Equal(t, "msg", resp.Msg())
		})
	}
}

func TestError(t *testing.T) {
	t.Run("ComposesCode", func(t *testing.T) {
		resp, err := response.Error[any]("FS", response.NotFound())
		require.NoError(t, err)
		assert.Equal(t, "FS0007", resp.Code())
		assert.Equal(t, response.NotFound().Message, resp.Msg())
		assert.False(t, resp.IsSuccess())
	})

	t.Run("MultibyteServiceCode", func(t *testing.T) {
		resp, err := response.Error[any]("éé", response.NotFound())
		require.NoError(t, err)
		assert.Equal(t, "éé0007", resp.Code())
	})

	for _, svc := range []string{"", "F", "FSX", "FSXY", "é"} {
		t.Run("RejectsServiceCode_"+svc, func(t *testing.T) {
			_, err := response.Error[any](svc, response.BadRequest())
			require.Error(t, err)
			assert.True(t, errx.IsCodeIn(err, response.CodeInvalidServiceCode))
		})
	}
}

func TestSuccessFactories(t *testing.T) {
	assert.True(t, response.Success[string]().IsSuccess())
	assert.True(t, response.SuccessWithInfo("x").IsSuccess())
	assert.True(t, response.SuccessWithResult([]int{1}, 1).IsSuccess())
	assert.True(t, response.SuccessEmpty().IsSuccess())

	_, ok := response.Success[string]().Info()
	assert.False(t, ok)
}

func TestSuccessWithInfo_JSON(t *testing.T) {
	b, err := json.Marshal(response.SuccessWithInfo("x"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"0","msg":"OK","info":"x"}`, string(b))
}

func TestSuccessWithResult_JSON(t *testing.T) {
	b, err := json.Marshal(response.SuccessWithResult([]string{"a", "b"}, 2))
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"0","msg":"OK","info":{"data":["a","b"],"meta":{"count":2}}}`, string(b))
}

func TestSuccess_OmitsInfo(t *testing.T) {
	b, err := json.Marshal(response.Success[string]())
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"0","msg":"OK"}`, string(b))

	// a zero-valued payload that was set explicitly is still encoded
	b, err = json.Marshal(response.SuccessWithInfo(false))
	require.NoError(t, err)
	assert.JSONEq(t, `{"code":"0","msg":"OK","info":false}`, string(b))
}

func TestSuccessEmpty_IsNotShared(t *testing.T) {
	first := response.SuccessEmpty()
	changed := first.WithMsg("changed").WithInfo(response.Empty{})
	_, err := first.WithCode("FS0002")
	require.NoError(t, err)

	again := response.SuccessEmpty()
	assert.Equal(t, "OK", again.Msg())
	assert.Equal(t, "0", again.Code())
	assert.True(t, again.IsSuccess())
	_, ok := again.Info()
	assert.False(t, ok)
	assert.Equal(t, "changed", changed.Msg())
}

func TestWithCode(t *testing.T) {
	resp := response.SuccessWithInfo(1)

	_, err := resp.WithCode("bad")
	assert.Error(t, err)

	updated, err := resp.WithCode("FS0001")
	require.NoError(t, err)
	assert.Equal(t, "FS0001", updated.Code())
	assert.False(t, updated.IsSuccess())
	assert.True(t, resp.IsSuccess())
}

func TestUnmarshal(t *testing.T) {
	t.Run("IgnoresUnknownFields", func(t *testing.T) {
		var resp response.Response[response.Result[string]]
		err := json.Unmarshal([]byte(`{"code":"0","msg":"OK","extra":1,"info":{"data":["a"],"meta":{"count":1}}}`), &resp)
		require.NoError(t, err)

		info, ok := resp.Info()
		require.True(t, ok)
		assert.Equal(t, []string{"a"}, info.Data)
		assert.Equal(t, 1, info.Meta.Count)
	})

	t.Run("NoInfo", func(t *testing.T) {
		var resp response.Response[string]
		require.NoError(t, json.Unmarshal([]byte(`{"code":"FS0002","msg":"internal server error","info":null}`), &resp))
		_, ok := resp.Info()
		assert.False(t, ok)
		assert.False(t, resp.IsSuccess())
	})

	t.Run("RejectsBadCode", func(t *testing.T) {
		var resp response.Response[string]
		err := json.Unmarshal([]byte(`{"code":"12","msg":"x"}`), &resp)
		assert.Error(t, err)
	})
}

func TestBuildResult(t *testing.T) {
	res := response.BuildResult[string](nil, response.Meta{})
	assert.NotNil(t, res.Data)
	assert.Empty(t, res.Data)

	b, err := json.Marshal(res)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(b), `"data":[]`))
}

func TestMeta(t *testing.T) {
	assert.Equal(t, 0, response.BuildMeta(nil).Count)

	n := 7
	assert.Equal(t, 7, response.BuildMeta(&n).Count)

	m, err := response.MetaFromString("42")
	require.NoError(t, err)
	assert.Equal(t, 42, m.Count)

	_, err = response.MetaFromString("forty-two")
	require.Error(t, err)
	assert.True(t, errx.IsCodeIn(err, response.CodeInvalidMetaCount))
}
