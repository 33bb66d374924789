package repository

const schemaSQL = `
CREATE SCHEMA IF NOT EXISTS salon;

CREATE TABLE IF NOT EXISTS salon.fixed_costs (
	id                       SERIAL PRIMARY KEY,
	rent                     NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (rent >= 0),
	utilities                NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (utilities >= 0),
	telephone                NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (telephone >= 0),
	maintenance              NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (maintenance >= 0),
	advertising              NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (advertising >= 0),
	insurance                NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (insurance >= 0),
	professional_fees        NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (professional_fees >= 0),
	receptionist_labor       NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (receptionist_labor >= 0),
	receptionist_payroll_tax NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (receptionist_payroll_tax >= 0),
	travel                   NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (travel >= 0),
	meals_entertainment      NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (meals_entertainment >= 0),
	training                 NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (training >= 0),
	taxes_licenses           NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (taxes_licenses >= 0),
	debt_service             NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (debt_service >= 0),
	postage                  NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (postage >= 0),
	pos_system               NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (pos_system >= 0),
	donations_promotional    NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (donations_promotional >= 0),
	store_supplies           NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (store_supplies >= 0),
	office_supplies          NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (office_supplies >= 0),
	software                 NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (software >= 0),
	other                    NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (other >= 0),
	updated_at               TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS salon.cost_categories (
	id              SERIAL PRIMARY KEY,
	name            TEXT NOT NULL CHECK (name <> ''),
	projected_total NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (projected_total >= 0),
	sort_order      INTEGER NOT NULL DEFAULT 0,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS salon.cost_items (
	id          SERIAL PRIMARY KEY,
	category_id INTEGER NOT NULL REFERENCES salon.cost_categories(id) ON DELETE CASCADE,
	description TEXT NOT NULL DEFAULT '',
	vendor      TEXT NOT NULL DEFAULT '',
	amount      NUMERIC(12,2) NOT NULL DEFAULT 0 CHECK (amount >= 0),
	status      TEXT NOT NULL DEFAULT 'planned' CHECK (status IN ('planned', 'committed', 'paid')),
	date        DATE NOT NULL DEFAULT CURRENT_DATE,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS cost_items_category_id_idx ON salon.cost_items (category_id);
`
