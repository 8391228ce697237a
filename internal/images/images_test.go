package images_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/clawsandpaws/pawsd/internal/domain/model"
	"github.com/clawsandpaws/pawsd/internal/images"
	. "github.com/smartystreets/goconvey/convey"
)

func TestRandomCat(t *testing.T) {
	Convey("Given a cat API", t, func() {
		ctx := context.Background()

		Convey("When the API answers with an image", func() {
			var gotKey string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotKey = r.Header.Get("x-api-key")
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(`[{"url":"https://cdn/cat1.jpg"},{"url":"https://cdn/cat2.jpg"}]`))
			}))
			defer srv.Close()

			p := images.NewHTTPProvider(
				images.WithEndpoints(srv.URL, ""),
				images.WithCatAPIKey("secret"),
			)
			url, err := p.RandomImage(ctx, model.TeamCats)

			Convey("Then the first URL comes back and the key was sent", func() {
				So(err, ShouldBeNil)
				So(url, ShouldEqual, "https://cdn/cat1.jpg")
				So(gotKey, ShouldEqual, "secret")
			})
		})

		Convey("When the API answers with an empty array", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`[]`))
			}))
			defer srv.Close()

			p := images.NewHTTPProvider(images.WithEndpoints(srv.URL, ""))
			_, err := p.RandomImage(ctx, model.TeamCats)

			Convey("Then ErrNoImage is returned", func() {
				So(errors.Is(err, images.ErrNoImage), ShouldBeTrue)
			})
		})

		Convey("When the API is broken", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadGateway)
			}))
			defer srv.Close()

			p := images.NewHTTPProvider(images.WithEndpoints(srv.URL, ""))
			_, err := p.RandomImage(ctx, model.TeamCats)

			Convey("Then the status propagates as an error", func() {
				So(err, ShouldNotBeNil)
			})
		})
	})
}

func TestRandomDog(t *testing.T) {
	Convey("Given a dog API", t, func() {
		ctx := context.Background()

		Convey("When the API answers with an image", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"message":"https://images.dog.ceo/d1.jpg","status":"success"}`))
			}))
			defer srv.Close()

			p := images.NewHTTPProvider(images.WithEndpoints("", srv.URL))
			url, err := p.RandomImage(ctx, model.TeamDogs)

			Convey("Then the message URL comes back", func() {
				So(err, ShouldBeNil)
				So(url, ShouldEqual, "https://images.dog.ceo/d1.jpg")
			})
		})

		Convey("When the message is empty", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"message":"","status":"error"}`))
			}))
			defer srv.Close()

			p := images.NewHTTPProvider(images.WithEndpoints("", srv.URL))
			_, err := p.RandomImage(ctx, model.TeamDogs)

			Convey("Then ErrNoImage is returned", func() {
				So(errors.Is(err, images.ErrNoImage), ShouldBeTrue)
			})
		})
	})
}
