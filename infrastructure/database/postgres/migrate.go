package postgres

import (
	"errors"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-engine/db/migrations"
)

// Migrate aplica as migrações embarcadas até a versão mais recente
func Migrate(dsn string) error {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return err
	}
	defer source.Close()

	mg, err := migrate.NewWithSourceInstance("iofs", source, dsn)
	if err != nil {
		return err
	}
	defer mg.Close()

	version, dirty, err := mg.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return err
	}

	if dirty {
		return errors.New("banco de dados em estado sujo, corrija a migração manualmente")
	}

	if err := mg.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			logrus.WithField("version", version).Info("Migrações já aplicadas")
			return nil
		}
		return err
	}

	logrus.Info("Migrações aplicadas com sucesso")
	return nil
}
