package recon

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/clinicayacucho/inventario-stock/internal/domain"
	"github.com/clinicayacucho/inventario-stock/internal/domain/entity"
	"github.com/clinicayacucho/inventario-stock/internal/domain/source"
)

// Config parámetros de operación del motor.
type Config struct {
	Tables       source.Tables
	CacheTTL     time.Duration // vigencia del snapshot cacheado
	TableTimeout time.Duration // tope por lectura de tabla; vencido, la tabla se degrada a vacía
}

// Engine es el motor de conciliación de existencias: único punto de entrada
// que consume la capa de presentación. Carga los dos catálogos y los cinco
// logs de movimientos, agrega por producto y evalúa las fórmulas de
// conservación de cada ubicación.
//
// El resultado se cachea con TTL explícito {valor, calculadoEn, ttl} y se
// reemplaza de forma atómica: ningún lector observa un ledger a medias.
// Singleflight garantiza a lo sumo una carga en vuelo; disparos concurrentes
// se acoplan al resultado en curso en lugar de repetir la lectura del origen.
type Engine struct {
	src source.TabularSource
	cfg Config
	log zerolog.Logger

	group  singleflight.Group
	mu     sync.RWMutex
	cached *entity.Snapshot
}

// NewEngine construye el motor. TTL o timeout en cero toman los defaults
// del libro original (10 minutos de caché, 30s por tabla).
func NewEngine(src source.TabularSource, cfg Config, log zerolog.Logger) *Engine {
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 10 * time.Minute
	}
	if cfg.TableTimeout <= 0 {
		cfg.TableTimeout = 30 * time.Second
	}
	return &Engine{src: src, cfg: cfg, log: log}
}

// Reconcile devuelve el snapshot vigente. Con caché válida no toca el origen;
// expirada o vacía, recarga las siete tablas y recalcula ambos ledgers.
func (e *Engine) Reconcile(ctx context.Context) (*entity.Snapshot, error) {
	if snap := e.snapshot(); snap != nil && !snap.Stale(e.cfg.CacheTTL, time.Now()) {
		return snap, nil
	}
	v, err, _ := e.group.Do("reconcile", func() (any, error) {
		// Revalidar dentro del vuelo: otro caller pudo recalcular mientras
		// esperábamos el turno del singleflight.
		if snap := e.snapshot(); snap != nil && !snap.Stale(e.cfg.CacheTTL, time.Now()) {
			return snap, nil
		}
		snap, err := e.compute(ctx)
		if err != nil {
			return nil, err
		}
		e.store(snap)
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*entity.Snapshot), nil
}

// Refresh invalida la caché y fuerza una corrida completa.
func (e *Engine) Refresh(ctx context.Context) (*entity.Snapshot, error) {
	e.mu.Lock()
	e.cached = nil
	e.mu.Unlock()
	return e.Reconcile(ctx)
}

// IsStale indica si el snapshot superó el TTL configurado.
func (e *Engine) IsStale(s *entity.Snapshot) bool {
	return s.Stale(e.cfg.CacheTTL, time.Now())
}

// CacheTTL expone la vigencia configurada de la caché.
func (e *Engine) CacheTTL() time.Duration { return e.cfg.CacheTTL }

func (e *Engine) snapshot() *entity.Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cached
}

func (e *Engine) store(s *entity.Snapshot) {
	e.mu.Lock()
	e.cached = s
	e.mu.Unlock()
}

// compute ejecuta una corrida completa: lectura con degradación por tabla,
// agregación por tipo de movimiento y construcción de ambos ledgers.
func (e *Engine) compute(ctx context.Context) (*entity.Snapshot, error) {
	var warnings []string

	// loadTable lee una tabla con timeout acotado. Si falla, registra la
	// degradación y devuelve ok=false: la tabla se trata como vacía y la
	// corrida continúa con las que sí cargaron.
	loadTable := func(spec source.TableSpec) ([]source.Row, bool) {
		tctx, cancel := context.WithTimeout(ctx, e.cfg.TableTimeout)
		defer cancel()
		rows, err := e.src.GetTable(tctx, spec.Name)
		if err != nil {
			e.log.Warn().Err(err).Str("tabla", spec.Name).
				Msg("tabla de origen ilegible; se degrada a vacía")
			warnings = append(warnings, fmt.Sprintf("tabla %q no disponible: tratada como vacía en esta corrida", spec.Name))
			return nil, false
		}
		return rows, true
	}

	t := e.cfg.Tables

	farmaciaRows, farmaciaOK := loadTable(t.CatalogoFarmacia)
	almacenRows, almacenOK := loadTable(t.CatalogoAlmacen)
	if !farmaciaOK && !almacenOK {
		// Sin ningún catálogo base no hay contra qué conciliar. Error
		// explícito: jamás devolver stock cero como si fuera real.
		return nil, fmt.Errorf("%w: %q y %q", domain.ErrReconciliationFailed,
			t.CatalogoFarmacia.Name, t.CatalogoAlmacen.Name)
	}

	ventasRows, _ := loadTable(t.Ventas)
	entradasRows, _ := loadTable(t.EntradasFarmacia)
	devolucionesRows, _ := loadTable(t.Devoluciones)
	comprasRows, _ := loadTable(t.ComprasAlmacen)
	mermasRows, _ := loadTable(t.MermasAlmacen)

	ventas := AggregateMovements(ventasRows, t.Ventas.IDField, t.Ventas.QtyField)
	entradas := AggregateMovements(entradasRows, t.EntradasFarmacia.IDField, t.EntradasFarmacia.QtyField)
	devoluciones := AggregateMovements(devolucionesRows, t.Devoluciones.IDField, t.Devoluciones.QtyField)
	compras := AggregateMovements(comprasRows, t.ComprasAlmacen.IDField, t.ComprasAlmacen.QtyField)
	mermas := AggregateMovements(mermasRows, t.MermasAlmacen.IDField, t.MermasAlmacen.QtyField)

	// Los dos builders corren de forma independiente y determinista; los
	// mapas de transferencia (entradas/devoluciones) se comparten de solo
	// lectura entre ambos, con signo opuesto en cada fórmula.
	farmacia := BuildFarmaciaLedger(LoadCatalog(farmaciaRows, t.CatalogoFarmacia), FarmaciaMovements{
		Ventas:       ventas,
		Entradas:     entradas,
		Devoluciones: devoluciones,
	})
	farmacia.Unavailable = !farmaciaOK

	almacen := BuildAlmacenLedger(LoadCatalog(almacenRows, t.CatalogoAlmacen), AlmacenMovements{
		Compras:      compras,
		Mermas:       mermas,
		Entradas:     entradas,
		Devoluciones: devoluciones,
	})
	almacen.Unavailable = !almacenOK

	snap := &entity.Snapshot{
		RunID:       uuid.New().String(),
		Farmacia:    farmacia,
		Almacen:     almacen,
		Warnings:    warnings,
		RefreshedAt: time.Now(),
	}
	e.log.Info().
		Str("run_id", snap.RunID).
		Int("items_farmacia", len(farmacia.Entries)).
		Int("items_almacen", len(almacen.Entries)).
		Int("advertencias", len(warnings)).
		Msg("conciliación completada")
	return snap, nil
}
