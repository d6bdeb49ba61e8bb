package db

// The shared exercise catalog (user_id NULL = visible to everybody), carried
// over from the original deployment, hence the Spanish names.
const seedSystemExercisesStmt = `
INSERT INTO exercise (name, muscle_group, description) VALUES
	('Press de Banca', 'Pecho', 'Ejercicio para pecho'),
	('Press Inclinado con Mancuerna', 'Pecho', 'Ejercicio para pecho'),
	('Máquina Contractora', 'Pecho', 'Ejercicio para pecho'),
	('Press Pecho en Máquina', 'Pecho', 'Ejercicio para pecho'),
	('Press de Banca Inclinado', 'Pecho', 'Ejercicio para pecho'),
	('Press Pecho Superior en Máquina', 'Pecho', 'Ejercicio para pecho'),
	('Remo con Barra', 'Espalda', 'Ejercicio para espalda'),
	('Jalón al Pecho Agarre Neutro', 'Espalda', 'Ejercicio para espalda'),
	('Jalón al Pecho Barra Amplia', 'Espalda', 'Ejercicio para espalda'),
	('Remo en Máquina Baja', 'Espalda', 'Ejercicio para espalda'),
	('Remo Gironda Espalda Alta', 'Espalda', 'Ejercicio para espalda'),
	('Pull Over en Polea', 'Espalda', 'Ejercicio para espalda'),
	('Remo Gironda', 'Espalda', 'Ejercicio para espalda'),
	('Press Francés', 'Triceps', 'Ejercicio para tríceps'),
	('Extensiones de Triceps con Barra Recta', 'Triceps', 'Ejercicio para tríceps'),
	('Press Cerrado de Triceps', 'Triceps', 'Ejercicio para tríceps'),
	('Extensiones de Triceps OH Unilateral', 'Triceps', 'Ejercicio para tríceps'),
	('Fondos en Máquina', 'Triceps', 'Ejercicio para tríceps'),
	('Curl de Bíceps', 'Biceps', 'Ejercicio para bíceps'),
	('Curl de Bíceps barra Z', 'Biceps', 'Ejercicio para bíceps'),
	('Curl de Bíceps recta', 'Biceps', 'Ejercicio para bíceps'),
	('Curl De Bíceps Banco Scott', 'Biceps', 'Ejercicio para bíceps'),
	('Curl Bayesian Polea', 'Biceps', 'Ejercicio para bíceps'),
	('Curl Martillo', 'Biceps', 'Ejercicio para bíceps'),
	('Curl Martillo Banco Scott', 'Biceps', 'Ejercicio para bíceps'),
	('Curl de Bíceps Banco Inclinado', 'Biceps', 'Ejercicio para bíceps'),
	('Press Militar en Máquina', 'Hombros', 'Ejercicio para hombros'),
	('Press Militar', 'Hombros', 'Ejercicio para hombros'),
	('Elevaciones Laterales con Mancuerna', 'Hombros', 'Ejercicio para hombros'),
	('Elevaciones Laterales en Polea Unilateral', 'Hombros', 'Ejercicio para hombros'),
	('Remo al Cuello', 'Hombros', 'Ejercicio para hombros'),
	('Hombro Posterior en Máquina', 'Hombros', 'Ejercicio para hombros'),
	('Sentadillas en Smith', 'Piernas', 'Ejercicio para piernas'),
	('Prensa 45º', 'Piernas', 'Ejercicio para piernas'),
	('Sentadillas en Barra Libre', 'Piernas', 'Ejercicio para piernas'),
	('Sentadilla Jaka', 'Piernas', 'Ejercicio para piernas'),
	('Extensiones de Cuadriceps Máquina', 'Piernas', 'Ejercicio para piernas'),
	('Extensiones de Femoral Máquina', 'Piernas', 'Ejercicio para piernas'),
	('Gemelos en Máquina', 'Piernas', 'Ejercicio para piernas'),
	('Peso Muerto Rumano', 'Piernas', 'Ejercicio para piernas'),
	('Abductores en Máquina', 'Piernas', 'Ejercicio para piernas'),
	('Crunch en Máquina', 'Abdomen', 'Ejercicio para abdomen');
`
