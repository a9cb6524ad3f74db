// AngelaMos | 2026
// service.go

package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mpke-dev/beatstore/internal/config"
	"github.com/mpke-dev/beatstore/internal/core"
)

// ErrInvalidDiscount rejects a checkout before any order row exists; an
// expired code never silently degrades to full price.
var ErrInvalidDiscount = errors.New("invalid or expired discount code")

type Presigner interface {
	PresignURL(ctx context.Context, prefix, storedURL string) (string, error)
}

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type Detail struct {
	Order *Order `json:"order"`
	Items []Item `json:"items"`
}

type Service struct {
	repo      Repository
	presigner Presigner
	mailer    Mailer
	storage   config.StorageConfig
}

func NewService(
	repo Repository,
	presigner Presigner,
	mailer Mailer,
	storage config.StorageConfig,
) *Service {
	return &Service{
		repo:      repo,
		presigner: presigner,
		mailer:    mailer,
		storage:   storage,
	}
}

// Checkout validates the discount code up front, then hands the cart-to-order
// conversion to one repository transaction.
func (s *Service) Checkout(
	ctx context.Context,
	userID int64,
	discountCode string,
) (*Order, error) {
	var discount *DiscountCode
	if discountCode != "" {
		found, err := s.repo.FindDiscount(ctx, discountCode)
		if errors.Is(err, core.ErrNotFound) {
			return nil, ErrInvalidDiscount
		}
		if err != nil {
			return nil, err
		}
		discount = found
	}

	return s.repo.CreateFromCart(ctx, userID, discount)
}

func (s *Service) List(ctx context.Context, userID int64) ([]Order, error) {
	orders, err := s.repo.ListForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []Order{}
	}

	return orders, nil
}

func (s *Service) Get(
	ctx context.Context,
	orderID, userID int64,
) (*Detail, error) {
	o, err := s.repo.GetForUser(ctx, orderID, userID)
	if err != nil {
		return nil, err
	}

	items, err := s.repo.ListItems(ctx, orderID)
	if err != nil {
		return nil, err
	}

	for i := range items {
		signed, err := s.presigner.PresignURL(
			ctx,
			s.storage.ImagePrefix,
			items[i].ImageURL,
		)
		if err != nil {
			return nil, fmt.Errorf("presign image url: %w", err)
		}
		items[i].ImageURL = signed
	}

	if items == nil {
		items = []Item{}
	}

	return &Detail{Order: o, Items: items}, nil
}

func (s *Service) MarkPaid(
	ctx context.Context,
	orderID, userID int64,
) (*Order, error) {
	return s.repo.MarkPaid(ctx, orderID, userID)
}

func (s *Service) ValidateDiscount(
	ctx context.Context,
	code string,
) (*DiscountCode, error) {
	return s.repo.FindDiscount(ctx, code)
}

// SendFiles emails the buyer signed download links for every beat on the
// order. The owner check happens first so a foreign order id leaks nothing.
func (s *Service) SendFiles(
	ctx context.Context,
	orderID, userID int64,
) error {
	if _, err := s.repo.GetForUser(ctx, orderID, userID); err != nil {
		return err
	}

	buyer, err := s.repo.BuyerForOrder(ctx, orderID)
	if err != nil {
		return err
	}

	lines, err := s.repo.DownloadLines(ctx, orderID)
	if err != nil {
		return err
	}

	body, err := s.buildDownloadEmail(ctx, orderID, buyer, lines)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Your beatstore order #%d is ready", orderID)
	if err := s.mailer.Send(ctx, buyer.Email, subject, body); err != nil {
		return fmt.Errorf("send fulfillment mail: %w", err)
	}

	return nil
}

func (s *Service) buildDownloadEmail(
	ctx context.Context,
	orderID int64,
	buyer *Buyer,
	lines []DownloadLine,
) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "Hi %s,\n\n", buyer.Name)
	fmt.Fprintf(&b, "Thanks for your purchase. Your downloads for order #%d:\n\n", orderID)

	for _, line := range lines {
		mp3URL, err := s.presigner.PresignURL(
			ctx,
			s.storage.AudioPrefix,
			line.MP3URL,
		)
		if err != nil {
			return "", fmt.Errorf("presign mp3 url: %w", err)
		}

		fmt.Fprintf(&b, "%s\n  MP3: %s\n", line.Title, mp3URL)

		if line.ArchiveURL != nil {
			archiveURL, err := s.presigner.PresignURL(
				ctx,
				s.storage.ArchivePrefix,
				*line.ArchiveURL,
			)
			if err != nil {
				return "", fmt.Errorf("presign archive url: %w", err)
			}
			fmt.Fprintf(&b, "  Project files: %s\n", archiveURL)
		}

		b.WriteString("\n")
	}

	b.WriteString("Links expire after one hour.\n")

	return b.String(), nil
}
