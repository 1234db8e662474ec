package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/dichfoto/dichfoto/database/models"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// migrateCmd 数据库迁移命令
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Database migration tools",
	Long:  `Migrate data from one database to another (e.g., SQLite to PostgreSQL).`,
}

// migrateRunCmd 执行迁移命令
var migrateRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run database migration",
	Long: `Run database migration from source to target database.

Examples:
  # Migrate from SQLite to PostgreSQL
  dichfoto migrate run --from-sqlite ./data/dichfoto.db --to-postgres "host=localhost user=postgres password=secret dbname=dichfoto port=5432"

  # Skip confirmation prompt
  dichfoto migrate run --from-sqlite ./data/dichfoto.db --to-postgres "..." --yes`,
	Run: func(cmd *cobra.Command, args []string) {
		fromSQLite, _ := cmd.Flags().GetString("from-sqlite")
		toPostgres, _ := cmd.Flags().GetString("to-postgres")
		skipConfirm, _ := cmd.Flags().GetBool("yes")
		batchSize, _ := cmd.Flags().GetInt("batch-size")

		if err := runMigration(fromSQLite, toPostgres, skipConfirm, batchSize); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateRunCmd)

	migrateRunCmd.Flags().String("from-sqlite", "", "Source SQLite file path")
	migrateRunCmd.Flags().String("to-postgres", "", "Target PostgreSQL connection string")
	migrateRunCmd.Flags().Bool("yes", false, "Skip confirmation prompt")
	migrateRunCmd.Flags().Int("batch-size", 200, "Batch size for data migration")
}

// migrateStats 迁移统计
type migrateStats struct {
	albums  int
	assets  int
	shares  int
	likes   int
	skipped int
	errors  []string
}

// runMigration 执行数据库迁移
func runMigration(fromSQLite, toPostgres string, skipConfirm bool, batchSize int) error {
	if fromSQLite == "" || toPostgres == "" {
		return fmt.Errorf("both --from-sqlite and --to-postgres are required")
	}

	log.Printf("Migrating from sqlite %s to postgres", fromSQLite)

	sourceDB, err := openMigrationDB(sqlite.Open(fromSQLite))
	if err != nil {
		return fmt.Errorf("failed to connect to source database: %w", err)
	}
	defer closeMigrationDB(sourceDB)

	targetDB, err := openMigrationDB(postgres.Open(toPostgres))
	if err != nil {
		return fmt.Errorf("failed to connect to target database: %w", err)
	}
	defer closeMigrationDB(targetDB)

	if !skipConfirm {
		fmt.Println("\nWarning: This will copy all albums, assets, share links and likes to the target database.")
		fmt.Print("Do you want to continue? [y/N]: ")
		var response string
		fmt.Scanln(&response)
		if response != "y" && response != "Y" {
			fmt.Println("Migration cancelled.")
			return nil
		}
	}

	log.Println("Migrating database schema...")
	if err := targetDB.AutoMigrate(&models.Album{}, &models.Asset{}, &models.ShareLink{}, &models.Like{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	ctx := context.Background()
	stats := &migrateStats{}

	// 先迁移相册，再迁移依赖它的实体
	log.Println("Migrating albums...")
	stats.albums = copyRecords[models.Album](ctx, sourceDB, targetDB, stats, batchSize)

	log.Println("Migrating assets...")
	stats.assets = copyRecords[models.Asset](ctx, sourceDB, targetDB, stats, batchSize)

	log.Println("Migrating share links...")
	stats.shares = copyRecords[models.ShareLink](ctx, sourceDB, targetDB, stats, batchSize)

	log.Println("Migrating likes...")
	stats.likes = copyRecords[models.Like](ctx, sourceDB, targetDB, stats, batchSize)

	printMigrateStats(stats)

	if len(stats.errors) > 0 {
		return fmt.Errorf("migration completed with %d errors", len(stats.errors))
	}

	log.Println("Migration completed successfully!")
	return nil
}

// copyRecords 按批次复制一张表，已存在的主键跳过
func copyRecords[T any](ctx context.Context, sourceDB, targetDB *gorm.DB, stats *migrateStats, batchSize int) int {
	migrated := 0
	offset := 0

	for {
		var records []T
		if err := sourceDB.WithContext(ctx).Limit(batchSize).Offset(offset).Find(&records).Error; err != nil {
			stats.errors = append(stats.errors, fmt.Sprintf("read batch at offset %d: %v", offset, err))
			return migrated
		}
		if len(records) == 0 {
			return migrated
		}

		for i := range records {
			result := targetDB.WithContext(ctx).Create(&records[i])
			if result.Error != nil {
				if isDuplicate(result.Error) {
					stats.skipped++
					continue
				}
				stats.errors = append(stats.errors, fmt.Sprintf("create record: %v", result.Error))
				continue
			}
			migrated++
		}

		offset += batchSize
	}
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// openMigrationDB 打开迁移用数据库连接
func openMigrationDB(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

func closeMigrationDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

// printMigrateStats 打印迁移统计
func printMigrateStats(stats *migrateStats) {
	fmt.Println()
	fmt.Println("========================================")
	fmt.Println("       Migration Statistics")
	fmt.Println("========================================")
	fmt.Printf("Albums migrated:      %d\n", stats.albums)
	fmt.Printf("Assets migrated:      %d\n", stats.assets)
	fmt.Printf("Share links migrated: %d\n", stats.shares)
	fmt.Printf("Likes migrated:       %d\n", stats.likes)
	fmt.Printf("Skipped records:      %d\n", stats.skipped)
	fmt.Println("========================================")

	if len(stats.errors) > 0 {
		fmt.Println("\nErrors encountered:")
		for _, err := range stats.errors {
			fmt.Printf("  - %s\n", err)
		}
	}
}
