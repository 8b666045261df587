package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yigit/mototransporte/internal/app/models"
	"github.com/yigit/mototransporte/internal/app/repositories"
	"github.com/yigit/mototransporte/internal/pkg/apperrors"
	"github.com/yigit/mototransporte/internal/pkg/filestorage"
	"github.com/yigit/mototransporte/internal/pkg/validation"
	"github.com/yigit/mototransporte/internal/storage"
	"golang.org/x/text/message"
)

// BackupService moves whole collections in and out of storage.
type BackupService interface {
	// Export reads every collection from storage and names the export file.
	Export(ctx context.Context) (storage.Document, string, error)
	// WriteExport exports and saves the document through files.
	WriteExport(ctx context.Context, files filestorage.FileStorage) (string, error)
	// Import overwrites each collection present in raw and reloads the
	// repositories. Nothing is written unless the whole document decodes.
	Import(ctx context.Context, raw []byte) (map[string]int, error)
	// ClearAll removes every collection after confirmation.
	ClearAll(ctx context.Context) error
}

func decodeAs[T any](raw storage.Record) error {
	var v T
	return json.Unmarshal(raw, &v)
}

var recordDecoders = map[string]func(storage.Record) error{
	models.CollectionStudents: decodeAs[models.Student],
	models.CollectionRoutes:   decodeAs[models.Route],
	models.CollectionDrivers:  decodeAs[models.Driver],
	models.CollectionVehicles: decodeAs[models.Vehicle],
}

type backupServiceImpl struct {
	repos     *repositories.Repositories
	facade    storage.Facade
	validator *validation.Validator
	confirmer Confirmer
	notifier  Notifier
	printer   *message.Printer
	logger    zerolog.Logger
}

// NewBackupService creates a new backup service
func NewBackupService(repos *repositories.Repositories, facade storage.Facade, validator *validation.Validator, opts Options) BackupService {
	return &backupServiceImpl{
		repos:     repos,
		facade:    facade,
		validator: validator,
		confirmer: opts.Confirmer,
		notifier:  opts.Notifier,
		printer:   newPrinter(opts.Locale),
		logger:    opts.Logger.With().Str("service", "backup").Logger(),
	}
}

func (s *backupServiceImpl) Export(ctx context.Context) (storage.Document, string, error) {
	now := s.validator.Now()
	doc := storage.Document{
		ExportDate:  now,
		Collections: make(map[string][]storage.Record, len(models.Collections)),
	}
	for _, name := range models.Collections {
		records, err := s.facade.Get(name).Await(context.WithoutCancel(ctx))
		if err != nil {
			s.logger.Error().Err(err).Str("collection", name).Msg("Export failed")
			s.notifier.Notify(models.NotificationError, s.printer.Sprintf(msgStorage))
			return storage.Document{}, "", err
		}
		doc.Collections[name] = records
	}
	return doc, storage.BackupFileName(now), nil
}

func (s *backupServiceImpl) WriteExport(ctx context.Context, files filestorage.FileStorage) (string, error) {
	doc, name, err := s.Export(ctx)
	if err != nil {
		return "", err
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode export: %w", err)
	}
	path, err := files.Save(name, bytes.NewReader(raw))
	if err != nil {
		s.logger.Error().Err(err).Str("file", name).Msg("Failed to write export")
		s.notifier.Notify(models.NotificationError, s.printer.Sprintf(msgStorage))
		return "", err
	}
	s.logger.Info().Str("path", path).Msg("Data exported")
	s.notifier.Notify(models.NotificationSuccess, s.printer.Sprintf(msgExported, name))
	return path, nil
}

func (s *backupServiceImpl) Import(ctx context.Context, raw []byte) (map[string]int, error) {
	doc, err := storage.DecodeDocument(raw, models.Collections)
	if err == nil {
		err = checkRecords(doc)
	}
	if err != nil {
		s.logger.Warn().Err(err).Msg("Import rejected")
		s.notifier.Notify(models.NotificationError, s.printer.Sprintf(msgImportFailed))
		return nil, err
	}

	counts := make(map[string]int, len(doc.Collections))
	for _, name := range models.Collections {
		records, ok := doc.Collections[name]
		if !ok {
			continue
		}
		if _, err := s.facade.Replace(name, records).Await(context.WithoutCancel(ctx)); err != nil {
			s.logger.Error().Err(err).Str("collection", name).Msg("Import write failed")
			s.notifier.Notify(models.NotificationError, s.printer.Sprintf(msgStorage))
			return counts, err
		}
		counts[name] = len(records)
	}

	s.reload(ctx)
	s.logger.Info().Interface("collections", counts).Msg("Data imported")
	s.notifier.Notify(models.NotificationSuccess, s.printer.Sprintf(msgImported))
	return counts, nil
}

// checkRecords decodes every record into its entity type.
func checkRecords(doc storage.Document) error {
	for name, records := range doc.Collections {
		decode := recordDecoders[name]
		for i, rec := range records {
			if err := decode(rec); err != nil {
				return apperrors.NewImportError(fmt.Sprintf("%s[%d]: %v", name, i, err), err)
			}
		}
	}
	return nil
}

func (s *backupServiceImpl) ClearAll(ctx context.Context) error {
	ok, err := s.confirmer.Confirm(ctx, s.printer.Sprintf(msgClearTitle), s.printer.Sprintf(msgClearBody))
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: clear all data", apperrors.ErrConfirmationDeclined)
	}

	var errs []error
	for _, name := range models.Collections {
		if _, err := s.facade.Remove(name).Await(context.WithoutCancel(ctx)); err != nil {
			errs = append(errs, err)
		}
	}
	s.reload(ctx)
	if err := errors.Join(errs...); err != nil {
		s.logger.Error().Err(err).Msg("Clear failed")
		s.notifier.Notify(models.NotificationError, s.printer.Sprintf(msgStorage))
		return err
	}
	s.logger.Info().Msg("All data cleared")
	s.notifier.Notify(models.NotificationSuccess, s.printer.Sprintf(msgCleared))
	return nil
}

func (s *backupServiceImpl) reload(ctx context.Context) {
	for name, err := range s.repos.LoadAll(ctx) {
		s.logger.Warn().Err(err).Str("collection", name).Msg("Collection could not be reloaded")
	}
}
