package database

import (
	"fmt"
	"rizhub_backend/internal/config"
	"rizhub_backend/internal/model"
	"rizhub_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.Database.User,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DBName,
		cfg.Database.Charset,
		cfg.Database.ParseTime,
	)

	gormCfg := &gorm.Config{}
	if cfg.Server.Mode == "release" {
		gormCfg.Logger = gormlogger.Default.LogMode(gormlogger.Warn)
	}

	db, err := gorm.Open(mysql.Open(dsn), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Migrations run automatically outside release mode; in release they need
	// the explicit -migrate flag.
	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		if err := Seed(db); err != nil {
			return nil, err
		}
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Kabanata{},
		&model.Video{},
		&model.Quiz{},
		&model.GuessCharacter{},
		&model.GuessWord{},
		&model.GalleryImage{},
		&model.KabanataProgress{},
		&model.QuizAttempt{},
		&model.WordGuessAttempt{},
		&model.VideoProgress{},
		&model.Notification{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	logger.Log.Info("Database migration completed")
	return nil
}

// Seed loads the starter Noli Me Tangere content. It only runs against an
// empty kabanata table, so redeploys never duplicate or clobber edited rows.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Kabanata{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		kabanatas := []model.Kabanata{
			{Number: 1, Title: "Isang Pagtitipon", Summary: "Nag-anyaya si Kapitan Tiago ng isang salusalo sa kanyang bahay sa Calle Anloague."},
			{Number: 2, Title: "Si Crisostomo Ibarra", Summary: "Dumating ang binatang si Crisostomo Ibarra mula sa pitong taong pag-aaral sa Europa."},
			{Number: 3, Title: "Ang Hapunan", Summary: "Sa hapunan, ikinuwento ni Padre Damaso ang kanyang mga hinaing laban sa mga indio."},
			{Number: 4, Title: "Erehe at Pilibustero", Summary: "Nalaman ni Ibarra mula kay Tenyente Guevarra ang sinapit ng kanyang amang si Don Rafael."},
			{Number: 5, Title: "Isang Bituin sa Gabing Madilim", Summary: "Nagmuni-muni si Ibarra sa kanyang silid habang inaalala si Maria Clara."},
		}
		if err := tx.Create(&kabanatas).Error; err != nil {
			return err
		}

		characters := []model.GuessCharacter{
			{Name: "Crisostomo Ibarra"},
			{Name: "Maria Clara"},
			{Name: "Padre Damaso"},
			{Name: "Elias"},
			{Name: "Sisa"},
			{Name: "Kapitan Tiago"},
		}
		if err := tx.Create(&characters).Error; err != nil {
			return err
		}

		quizzes := []model.Quiz{
			{KabanataID: kabanatas[0].ID, Question: "Sino ang nag-anyaya ng salusalo sa Calle Anloague?", ChoiceA: "Kapitan Tiago", ChoiceB: "Padre Damaso", ChoiceC: "Tenyente Guevarra", Answer: "A", Position: 1},
			{KabanataID: kabanatas[0].ID, Question: "Saan matatagpuan ang bahay na pinagdausan ng pagtitipon?", ChoiceA: "Calle Real", ChoiceB: "Calle Anloague", ChoiceC: "Escolta", Answer: "B", Position: 2},
			{KabanataID: kabanatas[1].ID, Question: "Ilang taong nag-aral si Ibarra sa Europa?", ChoiceA: "Lima", ChoiceB: "Sampu", ChoiceC: "Pito", Answer: "C", Position: 1},
			{KabanataID: kabanatas[1].ID, Question: "Ano ang buong pangalan ni Ibarra?", ChoiceA: "Juan Crisostomo Ibarra", ChoiceB: "Rafael Ibarra", ChoiceC: "Crispin Ibarra", Answer: "A", Position: 2},
			{KabanataID: kabanatas[3].ID, Question: "Sino ang nagkuwento kay Ibarra tungkol sa sinapit ng kanyang ama?", ChoiceA: "Padre Sibyla", ChoiceB: "Tenyente Guevarra", ChoiceC: "Kapitan Tiago", Answer: "B", Position: 1},
		}
		if err := tx.Create(&quizzes).Error; err != nil {
			return err
		}

		words := []model.GuessWord{
			{KabanataID: kabanatas[0].ID, CharacterID: characters[5].ID, Clue: "Ang mayamang may-ari ng bahay sa Calle Anloague.", Answer: "Kapitan Tiago", Position: 1},
			{KabanataID: kabanatas[1].ID, CharacterID: characters[0].ID, Clue: "Ang binatang kababalik lamang mula sa Europa.", Answer: "Crisostomo Ibarra", Position: 1},
			{KabanataID: kabanatas[2].ID, CharacterID: characters[2].ID, Clue: "Ang praylerong galit sa mga indio.", Answer: "Padre Damaso", Position: 1},
			{KabanataID: kabanatas[4].ID, CharacterID: characters[1].ID, Clue: "Ang dilag na inaalala ni Ibarra sa gabing madilim.", Answer: "Maria Clara", Position: 1},
		}
		if err := tx.Create(&words).Error; err != nil {
			return err
		}

		images := []model.GalleryImage{
			{KabanataID: kabanatas[0].ID, Title: "Ang Salusalo", URL: "/uploads/gallery/kabanata1-salusalo.jpg", Description: "Ang pagtitipon sa bahay ni Kapitan Tiago."},
			{KabanataID: kabanatas[1].ID, Title: "Ang Pagbabalik", URL: "/uploads/gallery/kabanata2-pagbabalik.jpg", Description: "Si Ibarra sa kanyang pagdating sa Maynila."},
			{KabanataID: kabanatas[2].ID, Title: "Ang Hapunan", URL: "/uploads/gallery/kabanata3-hapunan.jpg", Description: "Ang hapag ng hapunan sa salusalo."},
			{KabanataID: kabanatas[4].ID, Title: "Bituin sa Gabi", URL: "/uploads/gallery/kabanata5-bituin.jpg", Description: "Si Maria Clara sa alaala ni Ibarra."},
		}
		if err := tx.Create(&images).Error; err != nil {
			return err
		}

		logger.Log.Info("Seeded starter content",
			zap.Int("kabanatas", len(kabanatas)),
			zap.Int("quizzes", len(quizzes)),
			zap.Int("guessWords", len(words)),
			zap.Int("galleryImages", len(images)))
		return nil
	})
}
