package transform

// ValidatorBuilderOption is a functional option for configuring a Validator.
type ValidatorBuilderOption func(*validatorImpl)

// WithMaxLocation sets the largest accepted absolute location component.
// Non-positive values are ignored.
//
// Parameters:
//   - limit: the location bound in world units
//
// Returns:
//   - ValidatorBuilderOption: option function to apply
func WithMaxLocation(limit float32) ValidatorBuilderOption {
	return func(v *validatorImpl) {
		if limit > 0 {
			v.maxLocation = limit
		}
	}
}

// WithMaxScale sets the largest accepted absolute scale component.
// Non-positive values are ignored.
//
// Parameters:
//   - limit: the scale bound
//
// Returns:
//   - ValidatorBuilderOption: option function to apply
func WithMaxScale(limit float32) ValidatorBuilderOption {
	return func(v *validatorImpl) {
		if limit > 0 {
			v.maxScale = limit
		}
	}
}
