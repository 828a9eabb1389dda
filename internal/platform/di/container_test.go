package di

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	authuc "github.com/Alanove07/designbynexa/internal/application/usecase/auth"
	appcfg "github.com/Alanove07/designbynexa/internal/infra/config"
)

func TestRedactPath(t *testing.T) {
	assert.Equal(t, "***/sa.json", redactPath(`C:\keys\sa.json`))
	assert.Equal(t, "***/sa.json", redactPath("/etc/keys/sa.json"))
	assert.Equal(t, "***", redactPath("/etc/keys/"))
	assert.Equal(t, "", redactPath(" "))
}

func TestSessionSources_WithoutFirebaseDeniesEveryone(t *testing.T) {
	c := &Container{Logger: zap.NewNop(), Infra: &Infra{}}
	r := httptest.NewRequest("GET", "/admin/api/session", nil)
	r.Header.Set("Authorization", "Bearer some-token")

	g := authuc.NewGate(c.SessionSources()(r))
	defer g.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.Equal(t, authuc.StateUnauthenticated, g.Await(ctx))
}

func TestLocalUploadsBaseURL(t *testing.T) {
	assert.Equal(t, "http://localhost:9090/uploads", localUploadsBaseURL(&appcfg.Config{Port: "9090"}))
	assert.Equal(t, "http://localhost:8080/uploads", localUploadsBaseURL(&appcfg.Config{}))
	assert.Equal(t, "https://img.designbynexa.com", localUploadsBaseURL(&appcfg.Config{
		Port:                 "9090",
		StoragePublicBaseURL: "https://img.designbynexa.com/",
	}))
}
