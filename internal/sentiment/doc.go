// Package sentiment implements the lexicon-based sentiment scorer, the
// theme/entity/emotion extractors, the aggregation layer, and the risk
// assessor. Everything here is a pure function over its inputs; the only
// stateful component is the FeedbackLog.
package sentiment
