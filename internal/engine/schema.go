// Package engine wraps the embedded SQLite instance that serves as
// Fieldbook's query and analytics engine. The engine's entire binary image
// is base64-encoded into the key-value store after every mutating call;
// the key-value store is therefore the durable substrate for both
// representations of the data.
package engine

// Schema DDL, one statement per entity table. Every statement uses
// IF NOT EXISTS so re-applying the schema is a safe no-op.
const (
	createUsers = `CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    name TEXT,
    email TEXT UNIQUE,
    phone TEXT,
    role TEXT,
    avatar TEXT
);`

	createProjects = `CREATE TABLE IF NOT EXISTS projects (
    id TEXT PRIMARY KEY,
    name TEXT,
    code TEXT,
    description TEXT,
    location TEXT,
    province TEXT,
    client TEXT,
    contractor TEXT,
    subcontractor TEXT,
    consultant TEXT,
    engineer TEXT,
    supervisor TEXT,
    contract_no TEXT,
    contract_value REAL,
    currency TEXT,
    funding_source TEXT,
    start_date TEXT,
    end_date TEXT,
    status TEXT,
    progress REAL,
    created_at TEXT,
    updated_at TEXT,
    boq TEXT,
    rfis TEXT,
    lab_tests TEXT,
    schedule TEXT,
    daily_reports TEXT,
    documents TEXT,
    vehicles TEXT,
    materials TEXT,
    purchase_orders TEXT,
    settings TEXT
);`

	createMessages = `CREATE TABLE IF NOT EXISTS messages (
    id TEXT PRIMARY KEY,
    sender_id TEXT,
    receiver_id TEXT,
    content TEXT,
    timestamp TEXT,
    read_status INTEGER,
    project_id TEXT
);`

	createBoqItems = `CREATE TABLE IF NOT EXISTS boq_items (
    id TEXT PRIMARY KEY,
    project_id TEXT,
    item_no TEXT,
    description TEXT,
    unit TEXT,
    quantity REAL,
    unit_rate REAL,
    total_price REAL,
    executed_qty REAL
);`

	createRfis = `CREATE TABLE IF NOT EXISTS rfis (
    id TEXT PRIMARY KEY,
    project_id TEXT,
    number TEXT,
    title TEXT,
    description TEXT,
    status TEXT,
    submitted_date TEXT,
    response_date TEXT,
    responded_by TEXT
);`

	createLabTests = `CREATE TABLE IF NOT EXISTS lab_tests (
    id TEXT PRIMARY KEY,
    project_id TEXT,
    test_type TEXT,
    material TEXT,
    result TEXT,
    test_date TEXT,
    technician TEXT,
    notes TEXT
);`

	createScheduleTasks = `CREATE TABLE IF NOT EXISTS schedule_tasks (
    id TEXT PRIMARY KEY,
    project_id TEXT,
    name TEXT,
    start_date TEXT,
    end_date TEXT,
    progress REAL,
    assignee TEXT,
    depends_on TEXT
);`

	createDailyReports = `CREATE TABLE IF NOT EXISTS daily_reports (
    id TEXT PRIMARY KEY,
    project_id TEXT,
    date TEXT,
    weather TEXT,
    labor_count INTEGER,
    equipment_count INTEGER,
    work_description TEXT,
    notes TEXT
);`

	createSettings = `CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT
);`
)

// schemaDDL lists all CREATE TABLE statements in application order.
var schemaDDL = []string{
	createUsers,
	createProjects,
	createMessages,
	createBoqItems,
	createRfis,
	createLabTests,
	createScheduleTasks,
	createDailyReports,
	createSettings,
}
