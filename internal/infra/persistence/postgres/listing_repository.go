package postgres

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"feria/internal/domain/entity"
	domainerrors "feria/internal/domain/errors"
	"feria/internal/domain/repository"
	"feria/internal/infra/persistence/model"
)

// Discovery queries share a deterministic ordering so pagination stays stable
// when rows carry identical timestamps.
const listingOrder = "created_at DESC, id DESC"

// listingRepository implements the repository.ListingRepository interface.
type listingRepository struct {
	db *gorm.DB
}

// NewListingRepository is the constructor for listingRepository.
func NewListingRepository(db *gorm.DB) repository.ListingRepository {
	return &listingRepository{
		db: db,
	}
}

// FindByID retrieves a single listing by ID, regardless of its active flag.
func (repo *listingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Listing, error) {
	var listingM model.ListingModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&listingM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrListingNotFound
		}

		return nil, errors.Wrap(err, "failed to find listing by ID")
	}

	return toListingDomain(&listingM), nil
}

// FindAll retrieves every listing regardless of its active flag, newest first.
func (repo *listingRepository) FindAll(ctx context.Context) ([]*entity.Listing, error) {
	var listingModels []*model.ListingModel

	if err := repo.db.WithContext(ctx).
		Order(listingOrder).
		Find(&listingModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find all listings")
	}

	return toListingDomainSlice(listingModels), nil
}

// FindRecent retrieves active listings, newest first. A limit of 0 means unbounded.
func (repo *listingRepository) FindRecent(ctx context.Context, limit int) ([]*entity.Listing, error) {
	query := repo.db.WithContext(ctx).
		Where("active = ?", true).
		Order(listingOrder)
	if limit > 0 {
		query = query.Limit(limit)
	}

	var listingModels []*model.ListingModel
	if err := query.Find(&listingModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find recent listings")
	}

	return toListingDomainSlice(listingModels), nil
}

// FindFeatured retrieves active listings flagged as featured, newest first.
func (repo *listingRepository) FindFeatured(ctx context.Context, limit int) ([]*entity.Listing, error) {
	query := repo.db.WithContext(ctx).
		Where("active = ? AND featured = ?", true, true).
		Order(listingOrder)
	if limit > 0 {
		query = query.Limit(limit)
	}

	var listingModels []*model.ListingModel
	if err := query.Find(&listingModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find featured listings")
	}

	return toListingDomainSlice(listingModels), nil
}

// FindPromoted retrieves active listings flagged as daily promotions, newest first.
func (repo *listingRepository) FindPromoted(ctx context.Context, limit int) ([]*entity.Listing, error) {
	query := repo.db.WithContext(ctx).
		Where("active = ? AND promo = ?", true, true).
		Order(listingOrder)
	if limit > 0 {
		query = query.Limit(limit)
	}

	var listingModels []*model.ListingModel
	if err := query.Find(&listingModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find promoted listings")
	}

	return toListingDomainSlice(listingModels), nil
}

// FindByCategory retrieves listings in a category, newest first.
func (repo *listingRepository) FindByCategory(ctx context.Context, categoryID uuid.UUID, activeOnly bool) ([]*entity.Listing, error) {
	query := repo.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order(listingOrder)
	if activeOnly {
		query = query.Where("active = ?", true)
	}

	var listingModels []*model.ListingModel
	if err := query.Find(&listingModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find listings by category")
	}

	return toListingDomainSlice(listingModels), nil
}

// FindByMerchant retrieves all of a merchant's listings, including inactive ones.
func (repo *listingRepository) FindByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*entity.Listing, error) {
	var listingModels []*model.ListingModel

	if err := repo.db.WithContext(ctx).
		Where("merchant_id = ?", merchantID).
		Order(listingOrder).
		Find(&listingModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find listings by merchant")
	}

	return toListingDomainSlice(listingModels), nil
}

// escapeLikePattern quotes the ILIKE metacharacters so user input matches
// literally. The backslash is doubled first so it cannot re-escape the
// quoted wildcards.
func escapeLikePattern(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)

	return strings.ReplaceAll(s, `_`, `\_`)
}

// Search retrieves active listings whose title, description, or any tag
// contains the query, case-insensitively. The JSONB tags column is matched
// through its text form.
func (repo *listingRepository) Search(ctx context.Context, query string) ([]*entity.Listing, error) {
	pattern := "%" + escapeLikePattern(query) + "%"

	var listingModels []*model.ListingModel
	if err := repo.db.WithContext(ctx).
		Where("active = ?", true).
		Where("title ILIKE ? OR description ILIKE ? OR tags::text ILIKE ?", pattern, pattern, pattern).
		Order(listingOrder).
		Find(&listingModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to search listings")
	}

	return toListingDomainSlice(listingModels), nil
}

// CountByCategory returns the number of listings referencing a category, active or not.
func (repo *listingRepository) CountByCategory(ctx context.Context, categoryID uuid.UUID) (int64, error) {
	var count int64

	if err := repo.db.WithContext(ctx).
		Model(&model.ListingModel{}).
		Where("category_id = ?", categoryID).
		Count(&count).Error; err != nil {
		return 0, errors.Wrap(err, "failed to count listings by category")
	}

	return count, nil
}

// Create persists a new listing.
func (repo *listingRepository) Create(ctx context.Context, listing *entity.Listing) error {
	listingM := fromListingDomain(listing)

	if err := repo.db.WithContext(ctx).Create(listingM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrCategoryNotFound
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required listing information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create listing")
	}

	listing.ID = listingM.ID
	listing.CreatedAt = listingM.CreatedAt
	listing.UpdatedAt = listingM.UpdatedAt

	return nil
}

// Update modifies an existing listing.
func (repo *listingRepository) Update(ctx context.Context, listing *entity.Listing) error {
	listingM := fromListingDomain(listing)

	result := repo.db.WithContext(ctx).
		Model(&model.ListingModel{}).
		Where("id = ?", listing.ID).
		Updates(map[string]any{
			"title":       listingM.Title,
			"type":        listingM.Type,
			"description": listingM.Description,
			"price":       listingM.Price,
			"images":      listingM.Images,
			"tags":        listingM.Tags,
			"category_id": listingM.CategoryID,
			"whatsapp":    listingM.WhatsApp,
			"featured":    listingM.Featured,
			"promo":       listingM.Promo,
			"active":      listingM.Active,
		})

	if result.Error != nil {
		if isForeignKeyConstraintViolation(result.Error) {
			return domainerrors.ErrCategoryNotFound
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update listing")
	}

	if result.RowsAffected == 0 {
		return repository.ErrListingNotFound
	}

	return nil
}

// Delete removes a listing by ID.
func (repo *listingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.ListingModel{})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete listing")
	}

	if result.RowsAffected == 0 {
		return repository.ErrListingNotFound
	}

	return nil
}

// --- Mapper Functions ---

func toListingDomain(data *model.ListingModel) *entity.Listing {
	if data == nil {
		return nil
	}

	images := make([]entity.ListingImage, 0, len(data.Images))
	for _, img := range data.Images {
		images = append(images, entity.ListingImage{
			URL:     img.URL,
			AssetID: img.AssetID,
		})
	}

	return &entity.Listing{
		ID:          data.ID,
		Title:       data.Title,
		Type:        entity.ListingType(data.Type),
		Description: data.Description,
		Price:       data.Price,
		Images:      images,
		Tags:        data.Tags,
		CategoryID:  data.CategoryID,
		MerchantID:  data.MerchantID,
		WhatsApp:    data.WhatsApp,
		Featured:    data.Featured,
		Promo:       data.Promo,
		Active:      data.Active,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func toListingDomainSlice(models []*model.ListingModel) []*entity.Listing {
	listings := make([]*entity.Listing, 0, len(models))
	for _, listingM := range models {
		listings = append(listings, toListingDomain(listingM))
	}

	return listings
}

func fromListingDomain(data *entity.Listing) *model.ListingModel {
	if data == nil {
		return nil
	}

	images := make([]model.ListingImageData, 0, len(data.Images))
	for _, img := range data.Images {
		images = append(images, model.ListingImageData{
			URL:     img.URL,
			AssetID: img.AssetID,
		})
	}

	return &model.ListingModel{
		ID:          data.ID,
		Title:       data.Title,
		Type:        string(data.Type),
		Description: data.Description,
		Price:       data.Price,
		Images:      datatypes.NewJSONSlice(images),
		Tags:        datatypes.NewJSONSlice(data.Tags),
		CategoryID:  data.CategoryID,
		MerchantID:  data.MerchantID,
		WhatsApp:    data.WhatsApp,
		Featured:    data.Featured,
		Promo:       data.Promo,
		Active:      data.Active,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
