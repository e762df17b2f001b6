package migration

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/abhijitabd5/sti-academy/internal/config"
	coursedomain "github.com/abhijitabd5/sti-academy/internal/course/domain"
	documentdomain "github.com/abhijitabd5/sti-academy/internal/document/domain"
	enrollmentdomain "github.com/abhijitabd5/sti-academy/internal/enrollment/domain"
	"github.com/abhijitabd5/sti-academy/internal/seed"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			if err := conn.AutoMigrate(
				&coursedomain.Course{},
				&enrollmentdomain.Enrollment{},
				&documentdomain.Document{},
			); err != nil {
				return err
			}
		}

		return seed.EnsureDemoCatalog(conn)
	}),
)
