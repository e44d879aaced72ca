package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	boardapp "github.com/sidequest/backend/internal/application/board"
	"github.com/sidequest/backend/internal/domain/quest"
	"github.com/sidequest/backend/internal/infrastructure/config"
	"github.com/sidequest/backend/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMapConfig() config.MapConfig {
	return config.MapConfig{CenterLat: 1.3521, CenterLng: 103.8198, DefaultZoom: 12, ClusterZoom: 14}
}

type boardHandlerFixture struct {
	handler         *BoardHandler
	questRepo       *fakeQuestRepository
	participantRepo *fakeParticipantRepository
	profileRepo     *fakeProfileRepository
}

func setupBoardHandler() *boardHandlerFixture {
	gin.SetMode(gin.TestMode)

	f := &boardHandlerFixture{
		questRepo:       newFakeQuestRepository(),
		participantRepo: newFakeParticipantRepository(),
		profileRepo:     newFakeProfileRepository(),
	}
	markers := boardapp.NewMarkerService(f.questRepo, f.participantRepo, f.profileRepo, testMapConfig())
	f.handler = NewBoardHandler(markers, nil)
	return f
}

func TestBoardHandler_Markers(t *testing.T) {
	t.Run("returns markers above the cluster threshold", func(t *testing.T) {
		f := setupBoardHandler()
		ownerID := uuid.New()
		f.profileRepo.add(ownerID, "Alex")
		q, err := quest.NewQuest(ownerID, "Lunch at North Spine", quest.CategoryFood,
			"2030-09-01", "12:00", "13:00", "", "North Spine Plaza", 1.3462, 103.6805)
		require.NoError(t, err)
		f.questRepo.quests[q.ID] = q

		w := httptest.NewRecorder()
		c, _ := authedContext(w, uuid.New())
		c.Request, _ = http.NewRequest(http.MethodGet, "/board/markers?zoom=15", nil)

		f.handler.Markers(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp dto.Response
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.True(t, resp.Success)
		assert.Contains(t, w.Body.String(), `"clustered":false`)
		assert.Contains(t, w.Body.String(), "Lunch at North Spine")
	})

	t.Run("clusters below the threshold", func(t *testing.T) {
		f := setupBoardHandler()
		ownerID := uuid.New()
		q, err := quest.NewQuest(ownerID, "Study jam", quest.CategoryStudy,
			"2030-09-01", "10:00", "12:00", "", "Library", 1.3462, 103.6805)
		require.NoError(t, err)
		f.questRepo.quests[q.ID] = q

		w := httptest.NewRecorder()
		c, _ := authedContext(w, uuid.New())
		c.Request, _ = http.NewRequest(http.MethodGet, "/board/markers?zoom=8", nil)

		f.handler.Markers(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"clustered":true`)
		assert.Contains(t, w.Body.String(), `"count":1`)
	})

	t.Run("invalid filter clock is rejected", func(t *testing.T) {
		f := setupBoardHandler()

		w := httptest.NewRecorder()
		c, _ := authedContext(w, uuid.New())
		c.Request, _ = http.NewRequest(http.MethodGet, "/board/markers?start_after=25:00", nil)

		f.handler.Markers(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid zoom is rejected", func(t *testing.T) {
		f := setupBoardHandler()

		w := httptest.NewRecorder()
		c, _ := authedContext(w, uuid.New())
		c.Request, _ = http.NewRequest(http.MethodGet, "/board/markers?zoom=close", nil)

		f.handler.Markers(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBoardHandler_Camera(t *testing.T) {
	f := setupBoardHandler()

	w := httptest.NewRecorder()
	c, _ := authedContext(w, uuid.New())
	c.Request, _ = http.NewRequest(http.MethodGet, "/board/camera", nil)

	f.handler.Camera(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "1.3521")
	assert.Contains(t, w.Body.String(), `"zoom":12`)
}
