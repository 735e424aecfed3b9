package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/vendq/vendq/entity"
	"github.com/vendq/vendq/querier"
	"github.com/vendq/vendq/querier/ast"
)

type ClickHouseConfig struct {
	Addr     []string `yaml:"addr"`
	Database string   `yaml:"database"`
	Username string   `yaml:"username"`
	Password string   `yaml:"password"`
}

// VendorStore serves the vendors collection from ClickHouse. Filters reach
// it only as compiled chains; the raw filter string never gets here.
type VendorStore struct {
	conn driver.Conn
	cfg  ClickHouseConfig
}

func NewVendorStore(cfg ClickHouseConfig) (*VendorStore, error) {
	return &VendorStore{cfg: cfg}, nil
}

func setupVendorTable(ctx context.Context, conn driver.Conn) error {
	return conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS vendors (
			id UInt32,
			company_name String,
			vendor_status String,
			credit_limit Decimal(18, 2),
			balance Decimal(18, 2),
			employee_count Int64,
			last_payment_date Nullable(DateTime64(3)),
			blocked Bool,
			created_at DateTime64(3)
		)
		ENGINE = MergeTree
		ORDER BY id
	`)
}

func (s *VendorStore) Connect(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: s.cfg.Addr,
		Auth: clickhouse.Auth{
			Database: s.cfg.Database,
			Username: s.cfg.Username,
			Password: s.cfg.Password,
		},
		DialTimeout: 5 * time.Second,
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
	})

	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	if err := conn.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping the database: %w", err)
	}

	s.conn = conn

	if err := setupVendorTable(ctx, conn); err != nil {
		return fmt.Errorf("failed to create vendors table: %w", err)
	}

	return nil
}

func (s *VendorStore) Close(ctx context.Context) error {
	return s.conn.Close()
}

// selectColumns is the fixed projection; it never varies with the request.
const selectColumns = "id, company_name, vendor_status, credit_limit, balance, employee_count, last_payment_date, blocked, created_at"

// Query runs the compiled chain as a parameterized SELECT and returns one
// page of vendors, ordered by internal id for a stable pagination walk.
func (s *VendorStore) Query(ctx context.Context, chain ast.Chain, page, size int) ([]entity.Vendor, error) {
	where, args, err := querier.BuildWhere(chain)
	if err != nil {
		return nil, fmt.Errorf("cannot build where clause: %w", err)
	}

	page, size = clampPage(page, size)

	sql := "SELECT " + selectColumns + " FROM vendors"
	if where != "" {
		sql += " WHERE " + where
	}
	sql += " ORDER BY id LIMIT ? OFFSET ?"
	args = append(args, size, (page-1)*size)

	rows, err := s.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("vendor query failed: %w", err)
	}
	defer rows.Close()

	var vendors []entity.Vendor
	for rows.Next() {
		var v entity.Vendor
		if err := rows.Scan(
			&v.ID,
			&v.CompanyName,
			&v.Status,
			&v.CreditLimit,
			&v.Balance,
			&v.EmployeeCount,
			&v.LastPayment,
			&v.Blocked,
			&v.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("cannot scan vendor row: %w", err)
		}
		vendors = append(vendors, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("vendor row iteration failed: %w", err)
	}

	return vendors, nil
}

// Count returns the total number of vendors matching the chain, for the
// pagination metadata.
func (s *VendorStore) Count(ctx context.Context, chain ast.Chain) (uint64, error) {
	where, args, err := querier.BuildWhere(chain)
	if err != nil {
		return 0, fmt.Errorf("cannot build where clause: %w", err)
	}

	sql := "SELECT count() FROM vendors"
	if where != "" {
		sql += " WHERE " + where
	}

	var total uint64
	if err := s.conn.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("vendor count failed: %w", err)
	}

	return total, nil
}

// Seed batch-inserts vendors, used by dev bootstrap and integration tests.
func (s *VendorStore) Seed(ctx context.Context, vendors ...entity.Vendor) error {
	if len(vendors) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 1*time.Minute)
	defer cancel()

	batch, err := s.conn.PrepareBatch(ctx, "INSERT INTO vendors ("+selectColumns+")")
	if err != nil {
		return fmt.Errorf("couldn't prepare batch: %w", err)
	}

	for _, v := range vendors {
		err = batch.Append(
			v.ID,
			v.CompanyName,
			v.Status,
			v.CreditLimit,
			v.Balance,
			v.EmployeeCount,
			v.LastPayment,
			v.Blocked,
			v.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("couldn't append vendor to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("couldn't send batch: %w", err)
	}

	return nil
}

func clampPage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 || size > 200 {
		size = 50
	}
	return page, size
}
