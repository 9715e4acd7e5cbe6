package handler

import (
	"reflect"
	"strings"

	"github.com/eunji0124/The-Julge-sub000/internal/alert"
	"github.com/eunji0124/The-Julge-sub000/internal/cache"
	"github.com/eunji0124/The-Julge-sub000/internal/config"
	"github.com/eunji0124/The-Julge-sub000/internal/domain"
	"github.com/eunji0124/The-Julge-sub000/internal/feedback"
	"github.com/eunji0124/The-Julge-sub000/internal/query"
	"github.com/eunji0124/The-Julge-sub000/internal/recent"
	"github.com/eunji0124/The-Julge-sub000/internal/repository"
	"github.com/eunji0124/The-Julge-sub000/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/locales/ko"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Handler struct {
	validate   *validator.Validate
	config     *config.Config
	repository *repository.Repository
	translator ut.Translator
	session    *session.Store
	recorder   *feedback.Recorder
	recent     *recent.Store
	poller     *alert.Poller

	auth         *query.Auth
	notices      *query.NoticeList
	recommended  *query.Recommended
	recentViews  *query.RecentNotices
	applications *query.Applications
	profile      *query.Profile
	shopNotices  *query.ShopNotices
	myShop       *query.MyShop

	Mux *chi.Mux
}

func NewHandler(cfg *config.Config, repo *repository.Repository, store *session.Store, rec *feedback.Recorder, recentStore *recent.Store, poller *alert.Poller, profileCache *cache.Cache[domain.User]) (*Handler, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, err
	}

	return &Handler{
		validate:   validate,
		config:     cfg,
		repository: repo,
		translator: trans,
		session:    store,
		recorder:   rec,
		recent:     recentStore,
		poller:     poller,

		auth:         query.NewAuth(repo, store, rec, rec),
		notices:      query.NewNoticeList(repo, cfg.Pagination.NoticeLimit),
		recommended:  query.NewRecommended(repo, store, cfg.Pagination.RecommendLimit),
		recentViews:  query.NewRecentNotices(repo, recentStore),
		applications: query.NewApplications(repo, store, cfg.Pagination.ApplicationLimit),
		profile:      query.NewProfile(repo, store, profileCache, rec),
		shopNotices:  query.NewShopNotices(repo, store, cfg.Pagination.ShopNoticeLimit),
		myShop:       query.NewMyShop(repo, store, rec),

		Mux: chi.NewRouter(),
	}, nil
}

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	// 오류 메시지에 json 필드 이름이 나오게 한다
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	ko := ko.New()
	uni := ut.New(ko, ko)
	trans, _ := uni.GetTranslator("ko")
	if err := validate.RegisterValidation("district", func(fl validator.FieldLevel) bool {
		return domain.IsDistrict(fl.Field().String())
	}); err != nil {
		return nil, nil, err
	}
	for tag, text := range messages {
		if err := registerTranslation(validate, trans, tag, text); err != nil {
			return nil, nil, err
		}
	}
	return validate, trans, nil
}

// {0} 은 필드 이름, {1} 은 태그 파라미터다
var messages = map[string]string{
	"required":   "{0}은(는) 필수 항목입니다",
	"email":      "{0}은(는) 올바른 이메일 형식이어야 합니다",
	"min":        "{0}은(는) {1} 이상이어야 합니다",
	"max":        "{0}은(는) {1} 이하여야 합니다",
	"gte":        "{0}은(는) {1} 이상이어야 합니다",
	"eqfield":    "{0}이(가) {1}와(과) 일치하지 않습니다",
	"oneof":      "{0}은(는) [{1}] 중 하나여야 합니다",
	"numeric":    "{0}은(는) 숫자여야 합니다",
	"startswith": "{0}은(는) {1}(으)로 시작해야 합니다",
	"district":   "{0}은(는) 서울시 구 이름이어야 합니다",
}

func registerTranslation(validate *validator.Validate, trans ut.Translator, tag, text string) error {
	return validate.RegisterTranslation(tag, trans,
		func(ut ut.Translator) error {
			return ut.Add(tag, text, true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			t, err := ut.T(tag, fe.Field(), fe.Param())
			if err != nil {
				return fe.Error()
			}
			return t
		},
	)
}

func (h *Handler) RegisterRoutes() {
	h.Mux.Use(h.logger)
	h.Mux.Use(h.recoverer)

	h.Mux.Handle("/metrics", promhttp.Handler())
	h.Mux.Get("/feedback", h.DrainFeedback)
	h.Mux.Put("/location", h.SetLocation)
	h.Mux.Put("/visibility", h.SetVisibility)

	h.Mux.Route("/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/signup", h.Signup)
		r.Post("/logout", h.Logout)
		r.Get("/session", h.GetSession)
	})

	h.Mux.Route("/notices", func(r chi.Router) {
		r.Get("/", h.GetNotices)
		r.Put("/sort", h.SetNoticeSort)
		r.Put("/filter", h.SetNoticeFilter)
		r.Put("/page", h.SetNoticePage)
		r.Put("/keyword", h.SetNoticeKeyword)
		r.Get("/recommended", h.GetRecommendedNotices)
		r.Get("/recent", h.GetRecentNotices)
	})

	h.Mux.Route("/shops/{shopID}/notices/{noticeID}", func(r chi.Router) {
		r.Get("/", h.GetNoticeDetail)
		// 지원은 비로그인이어도 들어온다. 로그인 모달은 NoticeDetail.Apply 가 띄운다.
		r.Post("/application", h.ApplyNotice)
		r.With(h.requireSession).Delete("/application", h.CancelApplication)
	})

	// 이하 로그인이 필요하다
	h.Mux.Group(func(r chi.Router) {
		r.Use(h.requireSession)

		r.Route("/me", func(r chi.Router) {
			r.Get("/profile", h.GetProfile)
			r.Put("/profile", h.UpdateProfile)
			r.With(h.requireRole(domain.UserTypeEmployee)).Get("/applications", h.GetMyApplications)
		})

		r.Route("/my-shop", func(r chi.Router) {
			r.Use(h.requireRole(domain.UserTypeEmployer))
			r.Post("/", h.RegisterShop)
			r.Put("/", h.UpdateShop)
			r.Post("/image", h.UploadShopImage)
			r.Get("/notices", h.GetShopNotices)
			r.Post("/notices", h.PostShopNotice)
			r.Route("/notices/{noticeID}", func(r chi.Router) {
				r.Put("/", h.EditShopNotice)
				r.Get("/applications", h.GetNoticeApplicants)
				r.Put("/applications/{applicationID}", h.DecideApplication)
			})
		})

		r.Route("/alerts", func(r chi.Router) {
			r.Use(h.requireRole(domain.UserTypeEmployee))
			r.Get("/", h.GetAlerts)
			r.Put("/{alertID}/read", h.MarkAlertRead)
			r.Post("/modal/{action}", h.AlertModal)
		})
	})
}

// Close 는 화면 단위 상태를 닫는다. 이후 도착한 응답은 반영하지 않는다.
func (h *Handler) Close() {
	h.notices.Close()
	h.recommended.Close()
	h.recentViews.Close()
	h.applications.Close()
	h.profile.Close()
	h.shopNotices.Close()
}
