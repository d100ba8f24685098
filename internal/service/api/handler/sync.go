package handler

import (
	"net/http"
	"strconv"

	apperrors "github.com/darkkaiser/concert-sync-server/internal/pkg/errors"
	"github.com/darkkaiser/concert-sync-server/internal/service/api/constants"
	"github.com/darkkaiser/concert-sync-server/internal/service/api/httputil"
	"github.com/darkkaiser/concert-sync-server/internal/storage"
	applog "github.com/darkkaiser/concert-sync-server/pkg/log"
	"github.com/labstack/echo/v4"
)

// RunSyncHandler 전체 가수 동기화를 실행합니다.
//
// POST /sync/run?force=bool
//
// force=true이면 이미 동기화된 가수도 기존 데이터를 삭제하고 다시 동기화합니다.
// 전체 파이프라인(크롤링 → AI 분석 → 저장)이 끝날 때까지 블로킹됩니다.
func (h *Handler) RunSyncHandler(c echo.Context) error {
	force, err := parseForceParam(c)
	if err != nil {
		return err
	}

	result, err := h.syncService.SyncAll(c.Request().Context(), force)
	if err != nil {
		applog.WithComponent(constants.ComponentHandler).WithError(err).Error("전체 동기화 실행에 실패했습니다")
		return httputil.NewInternalServerError(constants.ErrMsgSyncFailed)
	}

	return c.JSON(http.StatusOK, result)
}

// RunArtistSyncHandler 이름으로 지정한 가수 한 명을 동기화합니다.
//
// POST /sync/run/:artist_name?force=bool
//
// 소스 DB에 해당 이름의 가수 키워드가 없으면 404를 반환합니다.
func (h *Handler) RunArtistSyncHandler(c echo.Context) error {
	// 경로 파라미터는 라우터가 이미 디코딩한 값이다. 여기서 다시 디코딩하면
	// 퍼센트 시퀀스를 포함한 가수 이름이 이중 디코딩으로 변형된다.
	artistName := c.Param("artist_name")

	force, err := parseForceParam(c)
	if err != nil {
		return err
	}

	result, err := h.syncService.SyncArtist(c.Request().Context(), artistName, force)
	if err != nil {
		if apperrors.Is(err, apperrors.NotFound) {
			return httputil.NewNotFoundError(constants.ErrMsgArtistNotFound)
		}

		applog.WithComponentAndFields(constants.ComponentHandler, applog.Fields{
			"artist_name": artistName,
			"error":       err,
		}).Error("가수 동기화 실행에 실패했습니다")

		return httputil.NewInternalServerError(constants.ErrMsgSyncFailed)
	}

	return c.JSON(http.StatusOK, result)
}

// ListResultsHandler 정제된 콘서트 검색 결과를 조회합니다.
//
// GET /sync/results?artist_name=이름
//
// artist_name이 주어지면 가수 이름 부분 일치(대소문자 무시)로 필터링합니다.
func (h *Handler) ListResultsHandler(c echo.Context) error {
	rows, err := h.target.ListSearchResults(c.Request().Context(), c.QueryParam("artist_name"))
	if err != nil {
		applog.WithComponent(constants.ComponentHandler).WithError(err).Error("콘서트 검색 결과 조회에 실패했습니다")
		return httputil.NewInternalServerError(constants.ErrMsgInternalServer)
	}

	if rows == nil {
		rows = []storage.ConcertSearchResult{}
	}

	return c.JSON(http.StatusOK, rows)
}

// ResultsByArtistIDHandler 특정 가수 키워드 ID의 콘서트 검색 결과를 조회합니다.
//
// GET /sync/results/:artist_keyword_id
//
// 해당 가수의 결과가 한 건도 없으면 404를 반환합니다.
func (h *Handler) ResultsByArtistIDHandler(c echo.Context) error {
	artistKeywordID, err := strconv.ParseInt(c.Param("artist_keyword_id"), 10, 64)
	if err != nil {
		return httputil.NewBadRequestError(constants.ErrMsgInvalidArtistKeywordID)
	}

	rows, err := h.target.ListSearchResultsByArtistID(c.Request().Context(), artistKeywordID)
	if err != nil {
		applog.WithComponent(constants.ComponentHandler).WithError(err).Error("콘서트 검색 결과 조회에 실패했습니다")
		return httputil.NewInternalServerError(constants.ErrMsgInternalServer)
	}

	if len(rows) == 0 {
		return httputil.NewNotFoundError(constants.ErrMsgNoResultsForArtist)
	}

	return c.JSON(http.StatusOK, rows)
}

// ListCrawledHandler 크롤링 원본 데이터를 조회합니다.
//
// GET /sync/crawled?artist_name=이름
func (h *Handler) ListCrawledHandler(c echo.Context) error {
	rows, err := h.target.ListCrawledData(c.Request().Context(), c.QueryParam("artist_name"))
	if err != nil {
		applog.WithComponent(constants.ComponentHandler).WithError(err).Error("크롤링 원본 데이터 조회에 실패했습니다")
		return httputil.NewInternalServerError(constants.ErrMsgInternalServer)
	}

	if rows == nil {
		rows = []storage.CrawledData{}
	}

	return c.JSON(http.StatusOK, rows)
}

// parseForceParam force 쿼리 파라미터를 파싱합니다.
// 파라미터가 없으면 false, 불리언으로 해석할 수 없으면 400 에러를 반환합니다.
func parseForceParam(c echo.Context) (bool, error) {
	raw := c.QueryParam("force")
	if raw == "" {
		return false, nil
	}

	force, err := strconv.ParseBool(raw)
	if err != nil {
		return false, httputil.NewBadRequestError(constants.ErrMsgBadRequest)
	}

	return force, nil
}
