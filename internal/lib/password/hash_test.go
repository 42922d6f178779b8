package password

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHash(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{
			name:     "regular password",
			password: "password123",
			wantErr:  false,
		},
		{
			name:     "password with special chars",
			password: "p@ssw0rd!@#$%^&*()",
			wantErr:  false,
		},
		{
			name:     "long password",
			password: "verylongpasswordwithmorethanfiftycharacters",
			wantErr:  false,
		},
		{
			name:     "unicode password",
			password: "senha-çãé-dorama",
			wantErr:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotHash, err := GetHash(tt.password)

			if (err != nil) != tt.wantErr {
				t.Errorf("GetHash() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && gotHash == "" {
				t.Error("GetHash() returned empty hash")
			}

			if !tt.wantErr {
				err = CompareHash(gotHash, tt.password)
				if err != nil {
					t.Errorf("Generated hash doesn't work with original password: %v", err)
				}
			}
		})
	}
}

func TestCompareHash(t *testing.T) {
	correctHash, err := GetHash("correct_password")
	if err != nil {
		t.Fatalf("Failed to create test hash: %v", err)
	}

	anotherHash, err := GetHash("another_password")
	if err != nil {
		t.Fatalf("Failed to create test hash: %v", err)
	}

	tests := []struct {
		name        string
		hash        string
		password    string
		shouldMatch bool
	}{
		{
			name:        "matching password",
			hash:        correctHash,
			password:    "correct_password",
			shouldMatch: true,
		},
		{
			name:        "wrong password",
			hash:        correctHash,
			password:    "wrong_password",
			shouldMatch: false,
		},
		{
			name:        "different hash same password",
			hash:        anotherHash,
			password:    "correct_password",
			shouldMatch: false,
		},
		{
			name:        "empty password",
			hash:        correctHash,
			password:    "",
			shouldMatch: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CompareHash(tt.hash, tt.password)

			if tt.shouldMatch && err != nil {
				t.Errorf("CompareHash() should succeed, got error: %v", err)
			}

			if !tt.shouldMatch && err == nil {
				t.Error("CompareHash() should fail, but got no error")
			}
		})
	}
}

func TestGetHash_DifferentPasswordsProduceDifferentHashes(t *testing.T) {
	hash1, err := GetHash("password1")
	if err != nil {
		t.Fatalf("GetHash failed: %v", err)
	}

	hash2, err := GetHash("password2")
	if err != nil {
		t.Fatalf("GetHash failed: %v", err)
	}

	if hash1 == hash2 {
		t.Error("Different passwords produced identical hashes")
	}
}

func TestGetHash_NeverEqualsPlaintext(t *testing.T) {
	for _, pw := range []string{"secret1", "841234567", "p@ss"} {
		hash, err := GetHash(pw)
		require.NoError(t, err)
		assert.NotEqual(t, pw, hash)
	}
}

func TestGetHash_SamePasswordDifferentSalt(t *testing.T) {
	hash1, err := GetHash("same_password")
	require.NoError(t, err)
	hash2, err := GetHash("same_password")
	require.NoError(t, err)

	assert.NotEqual(t, hash1, hash2)
	assert.NoError(t, CompareHash(hash1, "same_password"))
	assert.NoError(t, CompareHash(hash2, "same_password"))
}

func TestCompareDummy_AlwaysFails(t *testing.T) {
	assert.Error(t, CompareDummy("novelamania-dummy-password"))
	assert.Error(t, CompareDummy(""))
}

func TestNewResetToken(t *testing.T) {
	token1, err := NewResetToken()
	require.NoError(t, err)
	token2, err := NewResetToken()
	require.NoError(t, err)

	assert.Len(t, token1, 40)
	_, err = hex.DecodeString(token1)
	assert.NoError(t, err)
	assert.NotEqual(t, token1, token2)
}
