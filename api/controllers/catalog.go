package controllers

import (
	"net/http"

	"github.com/trackside-rentals/reporting-backend/api/responses"
	"github.com/trackside-rentals/reporting-backend/internal/catalog"
	"github.com/trackside-rentals/reporting-backend/pkg/logger"
)

func ListCategories(service catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		refs, err := service.Categories(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, refs)
	}
}

func ListProducts(service catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		refs, err := service.Products(ctx, r.URL.Query().Get("category"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, refs)
	}
}

func ListStores(service catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		refs, err := service.Stores(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, refs)
	}
}
