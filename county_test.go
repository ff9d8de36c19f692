package permitsearch_test

import (
	"testing"

	"github.com/fwojciec/permitsearch"
	"github.com/stretchr/testify/assert"
)

func TestDifficulty_Label(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Easy", permitsearch.DifficultyEasy.Label())
	assert.Equal(t, "Medium", permitsearch.DifficultyMedium.Label())
	assert.Equal(t, "Hard", permitsearch.DifficultyHard.Label())
	assert.Empty(t, permitsearch.Difficulty("").Label())
}

func TestCountyInfo_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		info    permitsearch.CountyInfo
		wantErr bool
	}{
		{name: "minimal", info: permitsearch.CountyInfo{URL: "https://example.com/permits"}},
		{name: "all fields", info: permitsearch.CountyInfo{
			URL:         "https://example.com/permits",
			Note:        "Walk-in only",
			Difficulty:  permitsearch.DifficultyHard,
			OfflineOnly: true,
			TaxBillURL:  "http://tax.example.org/bills",
		}},
		{name: "missing URL", info: permitsearch.CountyInfo{}, wantErr: true},
		{name: "relative URL", info: permitsearch.CountyInfo{URL: "/permits"}, wantErr: true},
		{name: "ftp URL", info: permitsearch.CountyInfo{URL: "ftp://example.com/permits"}, wantErr: true},
		{name: "bare public suffix", info: permitsearch.CountyInfo{URL: "https://com/permits"}, wantErr: true},
		{name: "bad tax bill URL", info: permitsearch.CountyInfo{URL: "https://example.com", TaxBillURL: "tax"}, wantErr: true},
		{name: "unknown difficulty", info: permitsearch.CountyInfo{URL: "https://example.com", Difficulty: "brutal"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.info.Validate()
			if tt.wantErr {
				assert.Equal(t, permitsearch.EINVALID, permitsearch.ErrorCode(err))
				return
			}
			assert.NoError(t, err)
		})
	}
}
