package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"wiw3ch.app/matchmaker/internal/http/middleware"
	"wiw3ch.app/matchmaker/internal/model"
	"wiw3ch.app/matchmaker/internal/service"
)

type stubMembers struct {
	getFn func(ctx context.Context, id int64) (*model.Member, error)
}

func (s *stubMembers) Get(ctx context.Context, id int64) (*model.Member, error) {
	return s.getFn(ctx, id)
}

func (s *stubMembers) Register(context.Context, string, string, string) (*model.Member, error) {
	return nil, errors.New("not implemented")
}

var _ = Describe("RequireMember", func() {
	var (
		router  *gin.Engine
		members *stubMembers
		seen    int64
	)

	BeforeEach(func() {
		gin.SetMode(gin.TestMode)
		seen = 0
		members = &stubMembers{getFn: func(_ context.Context, id int64) (*model.Member, error) {
			return &model.Member{ID: id}, nil
		}}
		router = gin.New()
		router.Use(middleware.Recovery())
		router.GET("/me", middleware.RequireMember(members, "X-Member-ID"), func(c *gin.Context) {
			seen = middleware.MemberID(c.Request.Context())
			c.Status(http.StatusOK)
		})
		router.GET("/panic", func(_ *gin.Context) { panic("boom") })
	})

	request := func(header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		if header != "" {
			req.Header.Set("X-Member-ID", header)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("attaches the resolved member", func() {
		w := request("42")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(seen).To(Equal(int64(42)))
	})

	It("returns 401 without the header", func() {
		Expect(request("").Code).To(Equal(http.StatusUnauthorized))
	})

	It("returns 401 for a malformed id", func() {
		Expect(request("-3").Code).To(Equal(http.StatusUnauthorized))
	})

	It("returns 401 for an unknown member", func() {
		members.getFn = func(_ context.Context, _ int64) (*model.Member, error) {
			return nil, service.ErrMemberNotFound
		}
		Expect(request("42").Code).To(Equal(http.StatusUnauthorized))
	})

	It("returns 500 when the directory fails", func() {
		members.getFn = func(_ context.Context, _ int64) (*model.Member, error) {
			return nil, errors.New("db down")
		}
		Expect(request("42").Code).To(Equal(http.StatusInternalServerError))
		Expect(seen).To(BeZero())
	})

	It("turns panics into 500s", func() {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
		Expect(w.Code).To(Equal(http.StatusInternalServerError))
	})
})
