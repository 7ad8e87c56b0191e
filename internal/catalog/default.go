package catalog

var defaultCatalog = []byte(`
instruments:
  - {symbol: NEXO, name: Nexo Dynamics Inc,    sector: Technology,  base_price: 185.00, bias: up}
  - {symbol: QBIT, name: Qbit Quantum Corp,    sector: Technology,  base_price: 92.50,  bias: volatile}
  - {symbol: SYNK, name: Synk Networks Inc,    sector: Technology,  base_price: 67.25,  bias: neutral}
  - {symbol: LEDG, name: Ledger Capital Group, sector: Finance,     base_price: 78.50,  bias: neutral}
  - {symbol: VALT, name: Vault Securities Inc, sector: Finance,     base_price: 125.00, bias: down}
  - {symbol: HELX, name: Helix Biomedical Inc, sector: Healthcare,  base_price: 195.00, bias: up}
  - {symbol: CURA, name: Cura Therapeutics,    sector: Healthcare,  base_price: 72.00,  bias: neutral}
  - {symbol: VOLT, name: Volt Energy Corp,     sector: Energy,      base_price: 98.00,  bias: volatile}
  - {symbol: SOLR, name: Solaris Power Inc,    sector: Energy,      base_price: 42.50,  bias: up}
  - {symbol: BRND, name: Brand Global Inc,     sector: Consumer,    base_price: 112.00, bias: neutral}
  - {symbol: LUXE, name: Luxe Retail Corp,     sector: Consumer,    base_price: 285.00, bias: down}
  - {symbol: MKTS, name: Markets Broad ETF,    sector: ETF,         base_price: 350.00, bias: neutral}
`)
