package impl

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "feria/internal/delivery/context"
	"feria/internal/domain/entity"
	domainerrors "feria/internal/domain/errors"
	"feria/internal/domain/repository"
	"feria/internal/domain/service"
	"feria/internal/usecase"
)

// discoveryService implements the DiscoveryUsecase interface.
type discoveryService struct {
	listingRepo  repository.ListingRepository
	categoryRepo repository.CategoryRepository
	mediaStorage service.MediaStorage
	qrService    service.QRCodeService
	logger       *slog.Logger
}

// DiscoveryServiceParams holds dependencies for DiscoveryService, injected by Fx.
type DiscoveryServiceParams struct {
	fx.In

	ListingRepo  repository.ListingRepository
	CategoryRepo repository.CategoryRepository
	MediaStorage service.MediaStorage
	QRService    service.QRCodeService
	Logger       *slog.Logger
}

// NewDiscoveryService is the constructor for discoveryService.
func NewDiscoveryService(params DiscoveryServiceParams) usecase.DiscoveryUsecase {
	return &discoveryService{
		listingRepo:  params.ListingRepo,
		categoryRepo: params.CategoryRepo,
		mediaStorage: params.MediaStorage,
		qrService:    params.QRService,
		logger:       params.Logger,
	}
}

func (srv *discoveryService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Home returns the curated home page rows: promotions, featured listings,
// the newest listings, and the active category strip.
func (srv *discoveryService) Home(ctx context.Context) (*usecase.HomeOutput, error) {
	categories, err := srv.categoryRepo.FindAll(ctx, true)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load categories")
	}

	promoted, err := srv.listingRepo.FindPromoted(ctx, usecase.HomePromotedLimit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load promoted listings")
	}

	featured, err := srv.listingRepo.FindFeatured(ctx, usecase.HomeFeaturedLimit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load featured listings")
	}

	recent, err := srv.listingRepo.FindRecent(ctx, usecase.HomeRecentLimit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load recent listings")
	}

	return &usecase.HomeOutput{
		Categories: categories,
		Promoted:   srv.toViews(promoted),
		Featured:   srv.toViews(featured),
		Recent:     srv.toViews(recent),
	}, nil
}

// CategoryPage resolves a category by slug and returns its active listings
// grouped by product/service.
func (srv *discoveryService) CategoryPage(ctx context.Context, slug string) (*usecase.CategoryPageOutput, error) {
	category, err := srv.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, domainerrors.ErrCategoryNotFound
		}

		return nil, errors.Wrap(err, "failed to find category by slug")
	}

	listings, err := srv.listingRepo.FindByCategory(ctx, category.ID, true)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load category listings")
	}

	output := &usecase.CategoryPageOutput{Category: category}
	for _, listing := range listings {
		view := srv.toView(listing)
		if listing.Type == entity.ListingTypeService {
			output.Services = append(output.Services, view)
		} else {
			output.Products = append(output.Products, view)
		}
	}

	return output, nil
}

// Search matches active listings by case-insensitive substring.
func (srv *discoveryService) Search(ctx context.Context, query string) ([]*usecase.ListingView, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []*usecase.ListingView{}, nil
	}

	listings, err := srv.listingRepo.Search(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to search listings")
	}

	return srv.toViews(listings), nil
}

// ListingDetail resolves a listing by id. Inactive listings still resolve
// here so previously shared direct links keep working.
func (srv *discoveryService) ListingDetail(ctx context.Context, id uuid.UUID) (*usecase.ListingView, error) {
	listing, err := srv.listingRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrListingNotFound) {
			return nil, domainerrors.ErrListingNotFound
		}

		return nil, errors.Wrap(err, "failed to find listing")
	}

	return srv.toView(listing), nil
}

// ContactQR renders the listing's contact deep link as a PNG QR code.
func (srv *discoveryService) ContactQR(ctx context.Context, id uuid.UUID) ([]byte, error) {
	view, err := srv.ListingDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if view.ContactLink == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("listing has no contact number")
	}

	png, err := srv.qrService.GenerateContactQR(view.ContactLink)
	if err != nil {
		srv.log(ctx).Error("Failed to render contact QR", slog.Any("listingID", id), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to render contact QR")
	}

	return png, nil
}

// --- Helpers ---

func (srv *discoveryService) toViews(listings []*entity.Listing) []*usecase.ListingView {
	views := make([]*usecase.ListingView, 0, len(listings))
	for _, listing := range listings {
		views = append(views, srv.toView(listing))
	}

	return views
}

func (srv *discoveryService) toView(listing *entity.Listing) *usecase.ListingView {
	view := &usecase.ListingView{
		Listing:     listing,
		ContactLink: BuildContactLink(listing.WhatsApp, listing.Title),
	}

	if len(listing.Images) > 0 {
		first := listing.Images[0].URL
		view.CardImage = srv.mediaStorage.DisplayURL(first, service.SizeProfileCard)
		view.ThumbImage = srv.mediaStorage.DisplayURL(first, service.SizeProfileThumb)
	}
	for _, img := range listing.Images {
		view.DetailImages = append(view.DetailImages, srv.mediaStorage.DisplayURL(img.URL, service.SizeProfileDetail))
	}

	return view
}

// BuildContactLink composes the wa.me deep link for a listing: the stored
// number reduced to digits plus a templated greeting naming the listing.
// Returns empty when the number has no digits at all.
func BuildContactLink(whatsapp, title string) string {
	digits := digitsOnly(whatsapp)
	if digits == "" {
		return ""
	}

	greeting := fmt.Sprintf("Hola, vi tu publicación \"%s\" y me interesa.", title)

	return "https://wa.me/" + digits + "?text=" + url.QueryEscape(greeting)
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	return b.String()
}
