package usecase

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/grospace/lease-engine/internal/core/domain"
	"github.com/grospace/lease-engine/internal/core/ports"
)

type UploadDocumentUseCase struct {
	agreements ports.AgreementRepository
	storage    ports.ObjectStorage
	queue      ports.MessageQueue
	defaultOrg string
}

func NewUploadDocumentUseCase(
	agreements ports.AgreementRepository,
	storage ports.ObjectStorage,
	queue ports.MessageQueue,
	defaultOrg string,
) *UploadDocumentUseCase {
	return &UploadDocumentUseCase{
		agreements: agreements,
		storage:    storage,
		queue:      queue,
		defaultOrg: defaultOrg,
	}
}

func (uc *UploadDocumentUseCase) Upload(
	ctx context.Context,
	filename, mimeType string,
	body io.Reader,
	organizationID string,
) (*domain.Agreement, error) {
	if !strings.EqualFold(filepath.Ext(filename), ".pdf") {
		return nil, domain.WrapError(domain.ErrInvalidInput, "upload document",
			fmt.Errorf("only PDF files are supported, got %q", filename))
	}
	if organizationID == "" {
		organizationID = uc.defaultOrg
	}

	id := uuid.NewString()
	storageKey := fmt.Sprintf("%s_%s", id, sanitizeFilename(filename))
	now := time.Now().UTC()

	if err := uc.storage.Save(ctx, storageKey, body); err != nil {
		return nil, fmt.Errorf("save to object storage: %w", err)
	}

	ag := &domain.Agreement{
		ID:             id,
		OrganizationID: organizationID,
		Type:           domain.DocLeaseLOI,
		Status:         domain.AgreementUploaded,
		SourceFilename: filename,
		StoragePath:    storageKey,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.agreements.Create(ctx, ag); err != nil {
		return nil, fmt.Errorf("create agreement record: %w", err)
	}

	if err := uc.queue.PublishDocumentUploaded(ctx, ag.ID); err != nil {
		return nil, fmt.Errorf("publish upload event: %w", err)
	}

	return ag, nil
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" {
		return "document.pdf"
	}
	return base
}
