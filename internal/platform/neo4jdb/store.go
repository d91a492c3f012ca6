package neo4jdb

import (
	"context"
	"fmt"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// Tx runs statements inside one managed transaction. Results are fully
// collected so records stay valid after the transaction function returns.
type Tx interface {
	Run(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error)
}

type TxFunc func(ctx context.Context, tx Tx) error

// Store executes transaction functions. Every statement issued through tx
// commits or rolls back together; the driver may retry fn on transient errors.
type Store interface {
	Read(ctx context.Context, fn TxFunc) error
	Write(ctx context.Context, fn TxFunc) error
}

type managedTx struct {
	tx neo4j.ManagedTransaction
}

func (m managedTx) Run(ctx context.Context, cypher string, params map[string]any) ([]*neo4j.Record, error) {
	res, err := m.tx.Run(ctx, cypher, params)
	if err != nil {
		return nil, err
	}
	return res.Collect(ctx)
}

var tracer = otel.Tracer("booklovers/neo4jdb")

func (c *Client) Read(ctx context.Context, fn TxFunc) error {
	return c.execute(ctx, neo4j.AccessModeRead, fn)
}

func (c *Client) Write(ctx context.Context, fn TxFunc) error {
	return c.execute(ctx, neo4j.AccessModeWrite, fn)
}

func (c *Client) execute(ctx context.Context, mode neo4j.AccessMode, fn TxFunc) error {
	if c == nil || c.Driver == nil {
		return fmt.Errorf("neo4jdb: client closed")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	name := "neo4j.read"
	if mode == neo4j.AccessModeWrite {
		name = "neo4j.write"
	}
	ctx, span := tracer.Start(ctx, name)
	span.SetAttributes(attribute.String("db.system", "neo4j"), attribute.String("db.name", c.Database))
	defer span.End()

	session := c.Driver.NewSession(ctx, neo4j.SessionConfig{AccessMode: mode, DatabaseName: c.Database})
	defer session.Close(ctx)

	work := func(tx neo4j.ManagedTransaction) (any, error) {
		return nil, fn(ctx, managedTx{tx: tx})
	}
	var err error
	if mode == neo4j.AccessModeWrite {
		_, err = session.ExecuteWrite(ctx, work)
	} else {
		_, err = session.ExecuteRead(ctx, work)
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
