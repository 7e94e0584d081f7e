package config

import (
	"context"
	"fmt"
	"io"

	"nova-library/internal/adapters/persistence/models"
	"nova-library/internal/adapters/persistence/repositories"
	"nova-library/internal/pkg/logger"
	"nova-library/internal/pkg/qrcode"
)

// SeedCover is the cover staff replace later from the admin tab
const SeedCover = "https://via.placeholder.com/300x450?text=Cover+Pending"

// DefaultQRDir is where printable labels are written
const DefaultQRDir = "physical_qr_codes"

// CatalogEntry is one title of the opening collection
type CatalogEntry struct {
	Title  string
	Author string
	Genre  string
}

// OpeningCatalog is the collection the library opened with
var OpeningCatalog = []CatalogEntry{
	// Rainbow Magic
	{"Layla the candyfloss fairy", "Daisy Meadows", "Children's Fantasy"},
	{"Jade the disco fairy", "Daisy Meadows", "Children's Fantasy"},
	{"Bethany the ballet fairy", "Daisy Meadows", "Children's Fantasy"},
	{"Jasmine the present fairy", "Daisy Meadows", "Children's Fantasy"},
	{"Saffron the yellow fairy", "Daisy Meadows", "Children's Fantasy"},
	{"Fern the green fairy", "Daisy Meadows", "Children's Fantasy"},
	{"Rebecca the rock 'n' roll fairy", "Daisy Meadows", "Children's Fantasy"},
	{"Polly the party fun fairy", "Daisy Meadows", "Children's Fantasy"},
	{"Saskia the salsa fairy", "Daisy Meadows", "Children's Fantasy"},
	{"Phoebe the fashion fairy", "Daisy Meadows", "Children's Fantasy"},
	{"Naomi the netball fairy", "Daisy Meadows", "Children's Fantasy"},
	{"Coco the cupcake fairy", "Daisy Meadows", "Children's Fantasy"},
	{"Izzy the indigo fairy", "Daisy Meadows", "Children's Fantasy"},
	{"Scarlett the garnet fairy", "Daisy Meadows", "Children's Fantasy"},
	{"Honey the sweet fairy", "Daisy Meadows", "Children's Fantasy"},
	{"Melody the music fairy", "Daisy Meadows", "Children's Fantasy"},
	{"Ruby the red fairy", "Daisy Meadows", "Children's Fantasy"},
	{"Kate the royal wedding fairy", "Daisy Meadows", "Children's Fantasy"},
	{"Amelia the singing fairy", "Daisy Meadows", "Children's Fantasy"},
	{"Lottie the lollipop fairy", "Daisy Meadows", "Children's Fantasy"},
	{"Amber the orange fairy", "Daisy Meadows", "Children's Fantasy"},
	{"Sky the blue fairy", "Daisy Meadows", "Children's Fantasy"},
	{"Evie the mist fairy", "Daisy Meadows", "Children's Fantasy"},
	{"Penny the pony fairy", "Daisy Meadows", "Children's Fantasy"},

	// Adrian Mole
	{"The wilderness years", "Sue Townsend", "Young Adult Fiction"},
	{"The secret diary of Adrian Mole Aged 13 3/4", "Sue Townsend", "Young Adult Fiction"},
	{"True confessions of Adrian Albert Mole", "Sue Townsend", "Young Adult Fiction"},
	{"The crowning pain of Adrian Mole", "Sue Townsend", "Young Adult Fiction"},
	{"The cappuccino Years", "Sue Townsend", "Young Adult Fiction"},

	// Horrible Science and Horrible Histories
	{"Blood, Bones and Body Bits", "Nick Arnold", "Science & History"},
	{"Ugly Bugs", "Nick Arnold", "Science & History"},
	{"Chemical Chaos", "Nick Arnold", "Science & History"},
	{"Deadly Diseases", "Nick Arnold", "Science & History"},
	{"Disgusting Digestion", "Nick Arnold", "Science & History"},
	{"Bulging Brains", "Nick Arnold", "Science & History"},
	{"Evolve or Die", "Nick Arnold", "Science & History"},
	{"Terrible Tudors", "Terry Deary", "Science & History"},
	{"Awesome Egyptians", "Terry Deary", "Science & History"},

	// St. Clare's
	{"Kitty at St. Clare's", "Pamela Cox / Enid Blyton", "Classic Children's Fiction"},
	{"St. Clare's.. The First Year", "Enid Blyton", "Classic Children's Fiction"},
	{"Second Form at St. Clare's", "Enid Blyton", "Classic Children's Fiction"},
	{"The third form at St. Clare's", "Enid Blyton", "Classic Children's Fiction"},
	{"Claudine at St. Clare's", "Enid Blyton", "Classic Children's Fiction"},
	{"The twins at St. Clare's", "Enid Blyton", "Classic Children's Fiction"},
}

// Seeder inserts catalog entries and writes one QR label per inserted row
type Seeder struct {
	inventory repositories.InventoryRepository
	baseURL   string
	// empty QRDir skips the labels
	QRDir  string
	DryRun bool
	out    io.Writer
}

// NewSeeder creates a new seeder that reports progress to out
func NewSeeder(inventory repositories.InventoryRepository, baseURL string, out io.Writer) *Seeder {
	return &Seeder{
		inventory: inventory,
		baseURL:   baseURL,
		QRDir:     DefaultQRDir,
		out:       out,
	}
}

// Run inserts entries one by one. A failing row is reported and skipped.
// It returns how many rows were processed.
func (s *Seeder) Run(ctx context.Context, entries []CatalogEntry) int {
	fmt.Fprintf(s.out, "🚀 Initializing Nova Mass Import for %d books...\n", len(entries))

	processed := 0
	for _, e := range entries {
		if err := s.seedOne(ctx, e); err != nil {
			fmt.Fprintf(s.out, "⚠️ Error processing '%s': %v\n", e.Title, err)
			continue
		}
		fmt.Fprintf(s.out, "✅ Secured & Generated: %s\n", e.Title)
		processed++
	}

	fmt.Fprintf(s.out, "\n🏁 Import Complete. %d/%d books processed.\n", processed, len(entries))
	if s.QRDir != "" && !s.DryRun {
		fmt.Fprintf(s.out, "📂 You can find all QR codes ready for printing in the '%s' folder.\n", s.QRDir)
	}
	return processed
}

func (s *Seeder) seedOne(ctx context.Context, e CatalogEntry) error {
	if s.DryRun {
		return nil
	}

	book := &models.Book{
		Title:     e.Title,
		Author:    e.Author,
		Genre:     e.Genre,
		Condition: "Good",
		Status:    "Available",
		CoverURL:  SeedCover,
	}
	if err := s.inventory.Create(ctx, book); err != nil {
		return err
	}

	if s.QRDir == "" {
		return nil
	}
	_, err := qrcode.WriteFile(s.QRDir, qrcode.SafeFileName(e.Title), qrcode.URLFor(s.baseURL, book.ID))
	return err
}

// SeedCatalogIfEmpty loads the opening collection into an empty store
func SeedCatalogIfEmpty(ctx context.Context, inventory repositories.InventoryRepository, baseURL string, out io.Writer) error {
	log := logger.Get()

	books, err := inventory.List(ctx)
	if err != nil {
		return err
	}
	if len(books) > 0 {
		log.Info().Int("books", len(books)).Msg("catalog already seeded")
		return nil
	}

	seeder := NewSeeder(inventory, baseURL, out)
	seeder.QRDir = ""
	n := seeder.Run(ctx, OpeningCatalog)
	log.Info().Int("books", n).Msg("opening catalog seeded")
	return nil
}
