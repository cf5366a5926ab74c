package postgres

import (
	"context"
	"fmt"

	"orangecat-wallets/internal/core/domain"
	"orangecat-wallets/internal/core/ports"

	"github.com/google/uuid"
)

// WalletAddressRepo implements ports.WalletAddressRepository.
type WalletAddressRepo struct {
	pool Pool
}

// NewWalletAddressRepo creates a new WalletAddressRepo.
func NewWalletAddressRepo(pool Pool) *WalletAddressRepo {
	return &WalletAddressRepo{pool: pool}
}

var _ ports.WalletAddressRepository = (*WalletAddressRepo)(nil)

// Upsert writes the derived-address breakdown in one transaction.
// discovered_at keeps the value from the first insert.
func (r *WalletAddressRepo) Upsert(ctx context.Context, addresses []domain.WalletAddress) error {
	if len(addresses) == 0 {
		return nil
	}

	query := `INSERT INTO wallet_addresses (wallet_id, chain, derivation_index, address, derivation_path,
			balance_btc, tx_count, discovered_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (wallet_id, chain, derivation_index) DO UPDATE SET
			address = EXCLUDED.address,
			derivation_path = EXCLUDED.derivation_path,
			balance_btc = EXCLUDED.balance_btc,
			tx_count = EXCLUDED.tx_count,
			updated_at = EXCLUDED.updated_at`

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin address upsert: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	for _, a := range addresses {
		_, err := tx.Exec(ctx, query,
			a.WalletID, a.Chain, a.DerivationIndex, a.Address, a.DerivationPath,
			a.BalanceBTC, a.TxCount, a.DiscoveredAt, a.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("upsert wallet address %s: %w", a.DerivationPath, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit address upsert: %w", err)
	}
	return nil
}

// ListByWallet returns the stored breakdown ordered by chain then index.
func (r *WalletAddressRepo) ListByWallet(ctx context.Context, walletID uuid.UUID) ([]domain.WalletAddress, error) {
	query := `SELECT wallet_id, address, chain, derivation_index, derivation_path,
			balance_btc, tx_count, discovered_at, updated_at
		FROM wallet_addresses WHERE wallet_id = $1
		ORDER BY chain, derivation_index`

	rows, err := r.pool.Query(ctx, query, walletID)
	if err != nil {
		return nil, fmt.Errorf("list wallet addresses: %w", err)
	}
	defer rows.Close()

	var addresses []domain.WalletAddress
	for rows.Next() {
		var a domain.WalletAddress
		if err := rows.Scan(
			&a.WalletID, &a.Address, &a.Chain, &a.DerivationIndex, &a.DerivationPath,
			&a.BalanceBTC, &a.TxCount, &a.DiscoveredAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan wallet address: %w", err)
		}
		addresses = append(addresses, a)
	}
	return addresses, rows.Err()
}
