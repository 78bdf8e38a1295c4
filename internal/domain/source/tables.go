package source

// TableSpec documenta una tabla requerida del origen: su nombre y los campos
// de identificador de producto y cantidad. Los catálogos además declaran el
// campo de grupo y los campos descriptivos que se copian al ledger.
type TableSpec struct {
	Name     string
	IDField  string
	QtyField string

	// Solo catálogos.
	GroupField      string
	NameField       string
	IngredientField string // principio activo; vacío en el catálogo de almacén
	LotField        string
	ExpiryField     string
}

// Tables reúne las siete tablas que consume el motor: dos catálogos base y
// cinco logs de movimientos.
type Tables struct {
	CatalogoFarmacia TableSpec
	CatalogoAlmacen  TableSpec
	Ventas           TableSpec
	EntradasFarmacia TableSpec
	Devoluciones     TableSpec // salidas de farmacia que regresan al almacén
	ComprasAlmacen   TableSpec
	MermasAlmacen    TableSpec
}

// DefaultTables devuelve el mapeo estándar del libro TESORERIA. Los nombres
// de tabla pueden sobreescribirse por configuración; los encabezados de
// columna son fijos del libro.
func DefaultTables() Tables {
	return Tables{
		CatalogoFarmacia: TableSpec{
			Name:            "2.1_Productos",
			IDField:         "2.1_ID",
			QtyField:        "2.1_Cantidad",
			GroupField:      "2.5_Grupo",
			NameField:       "2.1_Nombre",
			IngredientField: "2.1_PrincipioActivo",
			LotField:        "2.1_Lote",
			ExpiryField:     "2.1_FechaVencimiento",
		},
		CatalogoAlmacen: TableSpec{
			Name:        "2.6_Almacen",
			IDField:     "2.6_ID",
			QtyField:    "2.6_Cantidad",
			GroupField:  "2.6_Grupo",
			NameField:   "2.6_Nombre",
			ExpiryField: "2.6_FechaVencimiento",
		},
		Ventas:           TableSpec{Name: "4.2_VentasDetalle", IDField: "4.2_ProductoID", QtyField: "4.2_Cantidad"},
		EntradasFarmacia: TableSpec{Name: "2.4_EntradaProducto", IDField: "2.4_ProductoID", QtyField: "2.4_Cantidad"},
		Devoluciones:     TableSpec{Name: "2.421_SalidaProducto", IDField: "2.421_ProductoID", QtyField: "2.421_Cantidad"},
		ComprasAlmacen:   TableSpec{Name: "2.7_EntradaAlmacen", IDField: "2.7_ProductoID", QtyField: "2.7_Cantidad"},
		MermasAlmacen:    TableSpec{Name: "2.61_SalidaAlmacen", IDField: "2.61_ProductoID", QtyField: "2.61_Cantidad"},
	}
}
