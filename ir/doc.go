// Package ir defines the vocabulary shared by the translator packages.
//
// The types here describe a shader stage as the decoding layer hands it
// over:
//   - ShaderStage: Which pipeline stage a program runs in
//   - ShaderHeader: Fields decoded from the program header
//   - FeatureFlags: Open-ended set of features a program uses
//   - IoVariable: Semantic identity of an attribute address
//   - ComponentMask: 128-bit location*4+component usage mask
//
// # Attribute Address Space
//
// Attributes are addressed in bytes. The user-defined region starts at
// UserAttributeBase and holds UserAttributesCount locations of four 32-bit
// components each. MapAttribute resolves any byte address in the space to
// its IoVariable and location.
//
// ValidateHeader checks that a header only sets the fields its stage owns.
package ir
