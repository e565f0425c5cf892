package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/okian/f1predict/internal/adapters/http/api"
	"github.com/okian/f1predict/internal/inference"
	"github.com/okian/f1predict/pkg/metrics"
	. "github.com/smartystreets/goconvey/convey"
)

type fakeModel struct{ info inference.Info }

func (f fakeModel) Model() inference.Info { return f.info }

func TestServer_Register(t *testing.T) {
	Convey("Given a new API server", t, func() {
		server := api.NewServer(fakeModel{info: inference.Info{
			Name:          "best_pipeline",
			Estimator:     "logistic_regression",
			Probabilistic: true,
		}})
		mux := http.NewServeMux()
		server.Register(context.Background(), mux)

		Convey("When GET /healthz is requested", func() {
			req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it reports the loaded model", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "application/json")

				var body struct {
					Status string         `json:"status"`
					Model  inference.Info `json:"model"`
				}
				So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
				So(body.Status, ShouldEqual, "ok")
				So(body.Model.Name, ShouldEqual, "best_pipeline")
				So(body.Model.Probabilistic, ShouldBeTrue)
			})
		})

		Convey("When POST /healthz is requested", func() {
			req := httptest.NewRequest(http.MethodPost, "/healthz", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it is rejected", func() {
				So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
				So(w.Body.String(), ShouldContainSubstring, "method_not_allowed")
			})
		})

		Convey("When GET /metrics is requested", func() {
			metrics.RecordPrediction("top_finish")
			req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then Prometheus text is served", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Body.String(), ShouldContainSubstring, "f1predict_predictor_predictions_total")
			})
		})
	})

	Convey("Given a nil mux", t, func() {
		server := api.NewServer(fakeModel{})
		So(func() { server.Register(context.Background(), nil) }, ShouldPanic)
	})
}
