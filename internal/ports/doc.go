// Package ports defines the interfaces that connect the analysis use case
// to infrastructure adapters.
//
// # Port Interfaces
//
//   - [SpeciesSource]: reads one dataset file into a name sequence
//   - [Reporter]: renders a comparison result into one output artifact
//
// The application layer (internal/app) depends only on these interfaces.
// Adapters (internal/adapters) implement them on top of the file system,
// excelize and go-echarts.
package ports
