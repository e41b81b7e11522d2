// cmd/seeder/main.go
//
// Seeds the database with demo stock and sales so dashboards and exports
// have something to show in development. Stock flows through the real
// ingestion service and sales through the real checkout service, so the
// import audit log and the transaction ledger are populated the same way
// production traffic would populate them.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/sntracker/backend/internal/adapters/db"
	"github.com/sntracker/backend/internal/core/domain"
	"github.com/sntracker/backend/internal/core/ports"
	"github.com/sntracker/backend/internal/core/services"
	"github.com/sntracker/backend/internal/pkg/config"
	"github.com/sntracker/backend/internal/pkg/logger"
)

type product struct {
	brand string
	sku   string
	price int64
}

// Demo catalog. Prices are in the smallest currency unit.
var catalog = []product{
	{"Axio", "AX-100-BLK", 1499000},
	{"Axio", "AX-100-SLV", 1499000},
	{"Axio", "AX-200-BLK", 2199000},
	{"Nordwind", "NW-TAB8-GRY", 2750000},
	{"Nordwind", "NW-TAB11-GRY", 4150000},
	{"Pelikan", "PK-BUD-WHT", 349000},
	{"Pelikan", "PK-PRO-BLK", 899000},
	{"Stellar", "ST-WATCH2-BLK", 1890000},
	{"Stellar", "ST-WATCH2-GLD", 2090000},
	{"Vantage", "VG-CAM4K-BLK", 5690000},
}

func main() {
	unitsPerSKU := flag.Int("units", 25, "units to create per catalog SKU")
	sales := flag.Int("sales", 15, "number of checkout transactions to simulate")
	wipe := flag.Bool("wipe", false, "wipe existing data before seeding")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed")
	flag.Parse()

	slogger := logger.SetupLogger("info", "text")

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	if cfg.IsProduction() {
		slogger.Error("refusing to seed a production environment")
		os.Exit(1)
	}

	ctx := context.Background()
	database, err := db.NewDatabase(ctx, &db.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Name,
		SSLMode:         cfg.Database.SSLMode,
		MaxConnections:  5,
		MinConnections:  1,
		MaxConnLifetime: time.Hour,
		MaxConnIdleTime: 30 * time.Minute,
		ConnectTimeout:  10 * time.Second,
	}, slogger)
	if err != nil {
		slogger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer database.Close()

	stockRepo := db.NewStockRepository(database, cfg.Inventory.WipePageSize, slogger)
	ledgerRepo := db.NewLedgerRepository(database, cfg.Inventory.WipePageSize, slogger)
	importLogRepo := db.NewImportLogRepository(database, cfg.Inventory.WipePageSize, slogger)

	ingestService := services.NewIngestService(stockRepo, importLogRepo, nil, cfg.Inventory.ImportChunkSize, slogger)
	checkoutService := services.NewCheckoutService(ledgerRepo, nil, slogger)
	adminService := services.NewAdminService(stockRepo, ledgerRepo, importLogRepo, nil, slogger)
	readService := services.NewInventoryService(stockRepo, ledgerRepo, importLogRepo, slogger)

	rng := rand.New(rand.NewSource(*seed))

	if *wipe {
		for _, collection := range []string{services.CollectionTransactions, services.CollectionImportLogs, services.CollectionInventory} {
			deleted, err := adminService.WipeCollection(ctx, collection)
			if err != nil {
				slogger.Error("failed to wipe collection",
					slog.String("collection", collection),
					slog.Any("error", err))
				os.Exit(1)
			}
			slogger.Info("collection wiped",
				slog.String("collection", collection),
				slog.Int64("deleted", deleted))
		}
	}

	total, err := seedStock(ctx, ingestService, rng, *unitsPerSKU, slogger)
	if err != nil {
		slogger.Error("failed to seed stock", slog.Any("error", err))
		os.Exit(1)
	}

	sold, err := seedSales(ctx, readService, checkoutService, rng, *sales, slogger)
	if err != nil {
		slogger.Error("failed to seed sales", slog.Any("error", err))
		os.Exit(1)
	}

	slogger.Info("seeding complete",
		slog.Int("units_created", total),
		slog.Int("transactions", sold))
}

func seedStock(ctx context.Context, ingest ports.IngestService, rng *rand.Rand, unitsPerSKU int, slogger *slog.Logger) (int, error) {
	total := 0
	for _, p := range catalog {
		serials := make([]string, unitsPerSKU)
		for i := range serials {
			serials[i] = fmt.Sprintf("%s-%06d%04d", p.sku, rng.Intn(1000000), i)
		}

		count, err := ingest.IngestManual(ctx, "seeder", p.brand, p.sku, p.price, serials)
		if err != nil {
			return total, fmt.Errorf("failed to ingest %s %s: %w", p.brand, p.sku, err)
		}
		total += count

		slogger.Info("stock seeded",
			slog.String("brand", p.brand),
			slog.String("sku", p.sku),
			slog.Int("units", count))
	}
	return total, nil
}

func seedSales(ctx context.Context, read ports.InventoryReadService, checkout ports.CheckoutService, rng *rand.Rand, sales int, slogger *slog.Logger) (int, error) {
	ready, err := read.ScanInventory(ctx, ports.ScanFilter{Status: domain.StatusReady})
	if err != nil {
		return 0, fmt.Errorf("failed to scan ready stock: %w", err)
	}

	rng.Shuffle(len(ready), func(i, j int) {
		ready[i], ready[j] = ready[j], ready[i]
	})

	completed := 0
	next := 0
	for t := 0; t < sales; t++ {
		size := 1 + rng.Intn(3)
		if next+size > len(ready) {
			break
		}

		lines := make([]domain.CartLine, 0, size)
		for _, item := range ready[next : next+size] {
			lines = append(lines, domain.CartLine{
				SerialNumber: item.SerialNumber,
				Brand:        item.Brand,
				SKU:          item.SKU,
				Price:        item.Price,
			})
		}
		next += size

		trx, err := checkout.Checkout(ctx, "seeder", lines)
		if err != nil {
			return completed, fmt.Errorf("failed to checkout seeded cart: %w", err)
		}
		completed++

		slogger.Info("sale seeded",
			slog.String("transaction_id", trx.TransactionID),
			slog.Int("items", trx.ItemsCount),
			slog.Int64("total", trx.TotalBill))
	}

	return completed, nil
}
